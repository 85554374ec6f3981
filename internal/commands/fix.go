package commands

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/recat-dev/recat/internal/accounts"
	"github.com/recat-dev/recat/internal/auditlog"
	"github.com/recat-dev/recat/internal/config"
	"github.com/recat-dev/recat/internal/fixup"
	"github.com/recat-dev/recat/internal/ledger"
	"github.com/recat-dev/recat/internal/rules"
)

func newFixCommand(cfgFile, auditPath *string, quiet *bool) *cobra.Command {
	var useMemo bool
	var dryRun bool
	var imbalancePattern string

	cmd := &cobra.Command{
		Use:   "fix <account-path> <rules-file> <store>",
		Short: "Reassign imbalance splits according to a rules file",
		Long: `fix walks every transaction touching <account-path> (e.g.
"Liabilities:Credit Card") and, for each split still assigned to an imbalance
account, matches the transaction's description (or memo with --use-memo)
against the ordered rules file. The first matching rule's account wins.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("use-memo") {
				cfg.UseMemo = useMemo
			}
			if cmd.Flags().Changed("imbalance-pattern") {
				cfg.ImbalancePattern = imbalancePattern
			}
			if *auditPath != "" {
				cfg.AuditLog = *auditPath
			}
			return runFix(args[0], args[1], args[2], cfg, dryRun, *quiet)
		},
	}

	cmd.Flags().BoolVarP(&useMemo, "use-memo", "m", false, "match the memo field instead of the description")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "do not persist changes to the store")
	cmd.Flags().StringVarP(&imbalancePattern, "imbalance-pattern", "i", config.DefaultImbalancePattern,
		"pattern matching imbalance account names")

	return cmd
}

func runFix(accountPath, rulesPath, storePath string, cfg *config.Config, dryRun, quiet bool) error {
	imbalance, err := regexp.Compile(cfg.ImbalancePattern)
	if err != nil {
		return fmt.Errorf("compiling imbalance pattern %q: %w", cfg.ImbalancePattern, err)
	}

	rs, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}

	sess, err := ledger.Open(storePath, dryRun)
	if err != nil {
		return err
	}
	// The session is closed on every path, including a fatal classification
	// error mid-run; nothing is persisted unless Save succeeds first.
	defer sess.Close()

	source, err := accounts.Resolve(sess.Root(), accounts.SplitPath(accountPath))
	if err != nil {
		return fmt.Errorf("locating account to fix: %w", err)
	}

	stats, audit, err := fixup.Run(sess, source, rs, fixup.Options{
		UseMemo:   cfg.UseMemo,
		Imbalance: imbalance,
	})
	if err != nil {
		return err
	}

	if err := sess.Save(); err != nil {
		return err
	}

	if !dryRun && cfg.AuditLog != "" {
		if err := auditlog.Append(cfg.AuditLog, audit); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Printf("total=%d imbalance=%d fixed=%d\n", stats.Total, stats.Imbalance, stats.Fixed)
	}
	return nil
}
