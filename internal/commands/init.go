package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/milinsoft/bankapp/internal/config"
	"github.com/milinsoft/bankapp/internal/model"
)

func newInitCommand(configPath *string, log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and the default accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(*configPath, log)
		},
	}
}

func runInit(configPath string, log *logrus.Logger) error {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(configPath, config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", configPath)
	} else if err != nil {
		return fmt.Errorf("checking config: %w", err)
	}

	a, err := openApp(configPath, log)
	if err != nil {
		return err
	}
	defer a.close()

	// One debit and one credit account, created once.
	ctx := context.Background()
	for _, kind := range []model.AccountKind{model.KindDebit, model.KindCredit} {
		acc, err := a.account(ctx, kind.String())
		if err != nil {
			return err
		}
		fmt.Printf("%s ready (id %d, credit limit %s)\n", acc.Name, acc.ID, acc.CreditLimit.StringFixed(2))
	}
	return nil
}
