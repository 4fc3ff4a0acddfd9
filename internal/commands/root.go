// Package commands wires the CLI surface to the ledger services. Every
// command is thin glue: flag parsing, service calls, output formatting.
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/milinsoft/bankapp/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(log *logrus.Logger) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "bankapp",
		Short:   "Personal bank-account ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "bankapp.yaml", "path to the configuration file")

	rootCmd.AddCommand(newInitCommand(&configPath, log))
	rootCmd.AddCommand(newImportCommand(&configPath, log))
	rootCmd.AddCommand(newBalanceCommand(&configPath, log))
	rootCmd.AddCommand(newHistoryCommand(&configPath, log))

	return rootCmd
}
