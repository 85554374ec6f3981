package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recat-dev/recat/internal/accounts"
	"github.com/recat-dev/recat/internal/ledger"
	"github.com/recat-dev/recat/internal/rules"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <rules-file> <store>",
		Short: "Validate a rules file against a store's accounts",
		Long: `check parses the rules file and resolves every target account path
against the store, reporting each rule that names a nonexistent account.
Useful before running fix, since a broken rule aborts the run.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], args[1])
		},
	}
}

func runCheck(rulesPath, storePath string) error {
	rs, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}

	sess, err := ledger.Open(storePath, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	broken := 0
	for _, r := range rs.Rules() {
		if _, err := accounts.Resolve(sess.Root(), accounts.SplitPath(r.Account)); err != nil {
			fmt.Printf("line %d: %v\n", r.Line, err)
			broken++
		}
	}

	if broken > 0 {
		return fmt.Errorf("%d of %d rules name accounts missing from the store", broken, rs.Len())
	}
	fmt.Printf("%d rules OK\n", rs.Len())
	return nil
}
