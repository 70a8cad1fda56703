package cli

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Game record commands",
	}

	cmd.AddCommand(newRecordSubmitCmd())
	cmd.AddCommand(newRecordGetCmd())
	cmd.AddCommand(newRecordBatchCmd())
	cmd.AddCommand(newRecordRecentCmd())

	return cmd
}

func newRecordSubmitCmd() *cobra.Command {
	var (
		gameID     string
		playerID   string
		target     int
		guesses    []int
		duration   int64
		timestamp  int64
		success    bool
		difficulty string
		score      int64
		payment    uint64
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a completed game record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == "" {
				gameID = uuid.NewString()
			}
			if timestamp == 0 {
				timestamp = time.Now().Unix()
			}

			req := map[string]any{
				"game_id":          gameID,
				"player_id":        playerID,
				"target_number":    target,
				"attempts":         len(guesses),
				"guesses":          guesses,
				"duration_seconds": duration,
				"timestamp":        timestamp,
				"success":          success,
				"difficulty":       difficulty,
				"score":            score,
				"payment":          payment,
			}
			var result Receipt

			if err := client.Post("/api/v1/records", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game-id", "", "Game id (generated if omitted)")
	cmd.Flags().StringVar(&playerID, "player", "", "Player account (required)")
	cmd.Flags().IntVar(&target, "target", 0, "Target number (required)")
	cmd.Flags().IntSliceVar(&guesses, "guesses", nil, "Guess sequence (required)")
	cmd.Flags().Int64Var(&duration, "duration", 0, "Game duration in seconds")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "Completion timestamp (defaults to now)")
	cmd.Flags().BoolVar(&success, "success", false, "Whether the game was won")
	cmd.Flags().StringVar(&difficulty, "difficulty", "normal", "Difficulty: easy, normal, hard")
	cmd.Flags().Int64Var(&score, "score", 0, "Score earned")
	cmd.Flags().Uint64Var(&payment, "payment", 0, "Payment attached for storage")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("guesses")

	return cmd
}

func newRecordGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get a game record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Record

			if err := client.Get("/api/v1/records/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRecordBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <game-id> [game-id...]",
		Short: "Get multiple game records by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Records

			path := "/api/v1/records?ids=" + url.QueryEscape(strings.Join(args, ","))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRecordRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent games across all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Records

			if err := client.Get(fmt.Sprintf("/api/v1/records/recent?limit=%d", limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum records to return")

	return cmd
}
