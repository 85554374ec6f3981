package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recat-dev/recat/internal/ledger"
	"github.com/recat-dev/recat/internal/model"
)

func newAccountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts <store>",
		Short: "List the store's account hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(args[0])
		},
	}
}

func runAccounts(storePath string) error {
	sess, err := ledger.Open(storePath, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	printTree(sess.Root())
	return nil
}

func printTree(a *model.Account) {
	if !a.IsRoot() {
		fmt.Printf("%-40s %s\n", a.FullName(), a.Type)
	}
	for _, c := range a.Children {
		printTree(c)
	}
}
