package main

import (
	"os"

	"github.com/pftrack-dev/pftrack/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
