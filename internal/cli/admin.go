package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Owner and admin management commands",
	}

	cmd.AddCommand(newAdminAddCmd())
	cmd.AddCommand(newAdminRemoveCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminPriceCmd())
	cmd.AddCommand(newAdminRebuildCmd())
	cmd.AddCommand(newAdminCleanupCmd())

	return cmd
}

func newAdminAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <account-id>",
		Short: "Grant admin rights to an account (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"account_id": args[0]}

			if err := client.Post("/api/v1/admin/admins", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Admin added: " + args[0])
			return nil
		},
	}
}

func newAdminRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account-id>",
		Short: "Revoke admin rights from an account (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/admins/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Admin removed: " + args[0])
			return nil
		},
	}
}

func newAdminListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the admin roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Admins

			if err := client.Get("/api/v1/admin/admins", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminPriceCmd() *cobra.Command {
	var set uint64

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show or set the storage price per byte",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if cmd.Flags().Changed("set") {
				req := map[string]uint64{"price_per_byte": set}
				if err := client.Put("/api/v1/admin/price", req, nil); err != nil {
					return err
				}
				out.Print(Price{PricePerByte: set})
				return nil
			}

			var result Price
			if err := client.Get("/api/v1/admin/price", &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&set, "set", 0, "New price per byte (owner only)")

	return cmd
}

func newAdminRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-leaderboard",
		Short: "Force an immediate leaderboard rebuild (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/admin/leaderboard/rebuild", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Leaderboard rebuilt")
			return nil
		},
	}
}

func newAdminCleanupCmd() *cobra.Command {
	var olderThan int64
	var limit int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old game records (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"older_than": olderThan,
				"limit":      limit,
			}
			var result Cleanup

			if err := client.Post("/api/v1/admin/cleanup", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&olderThan, "older-than", 0, "Remove records with a timestamp before this (required)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum records to remove")
	_ = cmd.MarkFlagRequired("older-than")

	return cmd
}
