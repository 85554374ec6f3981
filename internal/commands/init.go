package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recat-dev/recat/internal/accounts"
	"github.com/recat-dev/recat/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "init <store>",
		Short: "Create a new ledger store with a default account skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], currency)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "USD", "currency code for the imbalance account")

	return cmd
}

func runInit(storePath, currency string) error {
	if _, err := os.Stat(storePath); err == nil {
		return fmt.Errorf("store %s already exists", storePath)
	}

	sess, err := ledger.Create(storePath)
	if err != nil {
		return err
	}
	defer sess.Close()

	for _, spec := range accounts.DefaultTree(currency) {
		segments := accounts.SplitPath(spec.Path)
		parent := sess.Root()
		if len(segments) > 1 {
			p, err := accounts.Resolve(sess.Root(), segments[:len(segments)-1])
			if err != nil {
				return fmt.Errorf("creating %s: %w", spec.Path, err)
			}
			parent = p
		}
		if _, err := sess.CreateAccount(parent, segments[len(segments)-1], spec.Type); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized ledger store at %s\n", storePath)
	return nil
}
