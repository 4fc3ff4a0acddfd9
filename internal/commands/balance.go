package commands

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newBalanceCommand(configPath *string, log *logrus.Logger) *cobra.Command {
	var account string
	var dateStr string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance as of a date (default today)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, log)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			acc, err := a.account(ctx, account)
			if err != nil {
				return err
			}

			var asOf time.Time
			if dateStr != "" {
				asOf, err = time.Parse(a.cfg.Import.DateLayout, dateStr)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
			}

			balance, err := a.accounts.BalanceAsOf(ctx, acc.ID, asOf)
			if err != nil {
				return err
			}

			day := asOf
			if day.IsZero() {
				day = time.Now()
			}
			fmt.Printf("Your balance on %s is: %s\n", day.Format(a.cfg.Import.DateLayout), balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "debit", "account kind: debit or credit")
	cmd.Flags().StringVar(&dateStr, "date", "", "balance as of this date")
	return cmd
}
