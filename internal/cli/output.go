package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Receipt:
		o.printReceipt(v)
	case Record:
		o.printRecord(v)
	case Records:
		o.printRecords(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case Players:
		o.printPlayers(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case ContractStats:
		o.printContractStats(v)
	case Admins:
		o.printAdmins(v)
	case Price:
		o.printPrice(v)
	case Cleanup:
		o.printCleanup(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Receipt response type (matches API)
type Receipt struct {
	GameID       string `json:"game_id"`
	StorageDelta int64  `json:"storage_delta"`
	Required     uint64 `json:"required"`
	Refund       uint64 `json:"refund"`
}

// Record response type
type Record struct {
	GameID          string `json:"game_id"`
	PlayerID        string `json:"player_id"`
	TargetNumber    int    `json:"target_number"`
	Attempts        int    `json:"attempts"`
	Guesses         []int  `json:"guesses"`
	DurationSeconds int64  `json:"duration_seconds"`
	Timestamp       int64  `json:"timestamp"`
	Success         bool   `json:"success"`
	Difficulty      string `json:"difficulty"`
	Score           int64  `json:"score"`
}

// Records response type
type Records struct {
	Records []*Record `json:"records"`
}

// PlayerStats response type
type PlayerStats struct {
	PlayerID        string  `json:"player_id"`
	TotalGames      int     `json:"total_games"`
	TotalWins       int     `json:"total_wins"`
	WinRate         float64 `json:"win_rate"`
	AverageAttempts float64 `json:"average_attempts"`
	BestScore       int     `json:"best_score"`
	TotalScore      int64   `json:"total_score"`
	TotalTime       int64   `json:"total_time"`
	LastPlayed      int64   `json:"last_played"`
}

// Players response type
type Players struct {
	Players []string `json:"players"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	PlayerID        string  `json:"player_id"`
	TotalGames      int     `json:"total_games"`
	WinRate         float64 `json:"win_rate"`
	AverageAttempts float64 `json:"average_attempts"`
	BestScore       int     `json:"best_score"`
	TotalScore      int64   `json:"total_score"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// ContractStats response type
type ContractStats struct {
	TotalGames    int64  `json:"total_games"`
	TotalPlayers  int64  `json:"total_players"`
	TotalPlayTime int64  `json:"total_play_time"`
	Version       string `json:"version"`
	Owner         string `json:"owner"`
	StorageBytes  int64  `json:"storage_bytes"`
}

// Admins response type
type Admins struct {
	Admins []string `json:"admins"`
}

// Price response type
type Price struct {
	PricePerByte uint64 `json:"price_per_byte"`
}

// Cleanup response type
type Cleanup struct {
	Removed int `json:"removed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printReceipt(r Receipt) {
	fmt.Printf("Record stored: %s\n", r.GameID)
	fmt.Printf("Storage delta: %d bytes\n", r.StorageDelta)
	fmt.Printf("Charged: %d\n", r.Required)
	fmt.Printf("Refund: %d\n", r.Refund)
}

func (o *Output) printRecord(r Record) {
	result := "lost"
	if r.Success {
		result = "won"
	}
	fmt.Printf("Game: %s\n", r.GameID)
	fmt.Printf("Player: %s\n", r.PlayerID)
	fmt.Printf("Result: %s in %d attempts (%s)\n", result, r.Attempts, r.Difficulty)
	fmt.Printf("Target: %d\n", r.TargetNumber)
	if len(r.Guesses) > 0 {
		guesses := make([]string, len(r.Guesses))
		for i, g := range r.Guesses {
			guesses[i] = fmt.Sprintf("%d", g)
		}
		fmt.Printf("Guesses: %s\n", strings.Join(guesses, ", "))
	}
	fmt.Printf("Duration: %ds\n", r.DurationSeconds)
	fmt.Printf("Score: %d\n", r.Score)
	fmt.Printf("Played: %s\n", formatTimestamp(r.Timestamp))
}

func (o *Output) printRecords(rs Records) {
	fmt.Printf("Records (%d):\n", len(rs.Records))
	for _, r := range rs.Records {
		if r == nil {
			fmt.Println("  - (not found)")
			continue
		}
		result := "lost"
		if r.Success {
			result = "won"
		}
		fmt.Printf("  - %s: %s %s in %d attempts, score %d\n", r.GameID, r.PlayerID, result, r.Attempts, r.Score)
	}
}

func (o *Output) printPlayerStats(s PlayerStats) {
	fmt.Printf("Player: %s\n", s.PlayerID)
	fmt.Printf("Games: %d (%d wins, %.1f%% win rate)\n", s.TotalGames, s.TotalWins, s.WinRate)
	fmt.Printf("Average Attempts: %.2f\n", s.AverageAttempts)
	if s.BestScore > 0 {
		fmt.Printf("Best Score: %d attempts\n", s.BestScore)
	} else {
		fmt.Println("Best Score: none yet")
	}
	fmt.Printf("Total Score: %d\n", s.TotalScore)
	fmt.Printf("Total Time: %ds\n", s.TotalTime)
	fmt.Printf("Last Played: %s\n", formatTimestamp(s.LastPlayed))
}

func (o *Output) printPlayers(p Players) {
	fmt.Printf("Players (%d):\n", len(p.Players))
	for _, id := range p.Players {
		fmt.Printf("  - %s\n", id)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%d):\n", len(l.Entries))
	for _, e := range l.Entries {
		fmt.Printf("  %d. %s - %.1f%% win rate, %.2f avg attempts, %d total score\n",
			e.Rank, e.PlayerID, e.WinRate, e.AverageAttempts, e.TotalScore)
	}
}

func (o *Output) printContractStats(s ContractStats) {
	fmt.Printf("Version: %s\n", s.Version)
	fmt.Printf("Owner: %s\n", s.Owner)
	fmt.Printf("Total Games: %d\n", s.TotalGames)
	fmt.Printf("Total Players: %d\n", s.TotalPlayers)
	fmt.Printf("Total Play Time: %ds\n", s.TotalPlayTime)
	fmt.Printf("Storage: %d bytes\n", s.StorageBytes)
}

func (o *Output) printAdmins(a Admins) {
	fmt.Printf("Admins (%d):\n", len(a.Admins))
	for _, id := range a.Admins {
		fmt.Printf("  - %s\n", id)
	}
}

func (o *Output) printPrice(p Price) {
	fmt.Printf("Price: %d per byte\n", p.PricePerByte)
}

func (o *Output) printCleanup(c Cleanup) {
	fmt.Printf("Removed %d records\n", c.Removed)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func formatTimestamp(ts int64) string {
	if ts == 0 {
		return "never"
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
