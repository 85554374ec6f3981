// Package commands wires up the recat CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/recat-dev/recat/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool
	var quiet bool
	var cfgFile string
	var auditPath string

	rootCmd := &cobra.Command{
		Use:   "recat",
		Short: "Re-categorize imported transactions using rules",
		Long: `recat reassigns transaction splits that an import process parked in an
"Imbalance" holding account, by matching transaction text against an ordered
rules file. Earlier rules take precedence; the first match wins.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			switch {
			case quiet:
				level = slog.LevelError
			case verbose:
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every inspected transaction")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress normal output (except errors)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default recat.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&auditPath, "audit-log", "", "CSV file to append reassignments to")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(newFixCommand(&cfgFile, &auditPath, &quiet))
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountsCommand())

	return rootCmd
}
