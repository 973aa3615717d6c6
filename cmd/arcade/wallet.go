package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mdlunited/arcade/internal/api"
	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/shop"
)

var (
	flagHistoryLimit int
	flagTokenTTL     time.Duration
	flagTokenName    string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Inspect and manage store balances",
	Long: `Operate on the same wallets the HTTP API serves.

Examples:
  arcade wallet balance 1234
  arcade wallet grant 1234 500
  arcade wallet history 1234 --limit 5
  arcade wallet token 1234 --name alice`,
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance <user>",
	Short: "Show a user's balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(ctx context.Context, b *backend) error {
			bal, err := b.shop.Balance(ctx, shop.User{ID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", args[0], humanize.Comma(bal), b.shop.Catalog().Currency())
			return nil
		})
	},
}

var walletGrantCmd = &cobra.Command{
	Use:   "grant <user> <amount>",
	Short: "Add coins to a user's wallet as the configured admin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		return withBackend(cmd, func(ctx context.Context, b *backend) error {
			admin := shop.User{ID: b.cfg.AdminUserID, Name: "cli"}
			bal, err := b.shop.Grant(ctx, admin, args[0], amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "granted %s, new balance %s\n", humanize.Comma(amount), humanize.Comma(bal))
			return nil
		})
	},
}

var walletHistoryCmd = &cobra.Command{
	Use:   "history <user>",
	Short: "Show a user's recent ledger entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(ctx context.Context, b *backend) error {
			entries, err := b.shop.History(ctx, shop.User{ID: args[0]}, flagHistoryLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No ledger entries.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "  %+8d  %8s  %-24s  %s\n", e.Delta, humanize.Comma(e.Balance), e.Reason, humanize.Time(e.CreatedAt))
			}
			return nil
		})
	},
}

var walletTokenCmd = &cobra.Command{
	Use:   "token <user>",
	Short: "Issue an API bearer token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadServer()
		token, err := api.IssueToken(cfg.JWTSecret, args[0], flagTokenName, flagTokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	walletHistoryCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries to show")
	walletTokenCmd.Flags().DurationVar(&flagTokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	walletTokenCmd.Flags().StringVar(&flagTokenName, "name", "", "Display name carried in the token")

	walletCmd.AddCommand(walletBalanceCmd, walletGrantCmd, walletHistoryCmd, walletTokenCmd)
}

// withBackend opens the store services for one command.
func withBackend(cmd *cobra.Command, fn func(ctx context.Context, b *backend) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := openBackend(ctx, config.LoadServer())
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(ctx, b)
}
