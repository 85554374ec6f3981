package main

import (
	"os"

	"github.com/recat-dev/recat/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
