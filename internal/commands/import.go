package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newImportCommand(configPath *string, log *logrus.Logger) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a file into an account",
		Args:  cobra.ExactArgs(1),
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

			drafts, err := a.registry.ParseFile(args[0], acc.ID)
			if err != nil {
				return err
			}

			ids, balance, err := a.transactions.Import(ctx, acc.ID, drafts)
			if err != nil {
				return err
			}

			fmt.Printf("Transactions have been loaded successfully! Imported %d, current balance: %s\n",
				len(ids), balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "debit", "account kind: debit or credit")
	return cmd
}
