package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newHistoryCommand(configPath *string, log *logrus.Logger) *cobra.Command {
	var account string
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions in a date range, most recent first",
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

			var from, to time.Time
			if fromStr != "" {
				if from, err = time.Parse(a.cfg.Import.DateLayout, fromStr); err != nil {
					return fmt.Errorf("parsing --from: %w", err)
				}
			}
			if toStr != "" {
				if to, err = time.Parse(a.cfg.Import.DateLayout, toStr); err != nil {
					return fmt.Errorf("parsing --to: %w", err)
				}
			}

			txns, err := a.transactions.ByDateRange(ctx, acc.ID, from, to)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				fmt.Println("No transactions found!")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT")
			for _, t := range txns {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					t.ID, t.Date.Format(a.cfg.Import.DateLayout), t.Description, t.Amount.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&account, "account", "debit", "account kind: debit or credit")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (inclusive)")
	return cmd
}
