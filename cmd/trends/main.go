package main

import (
	"os"

	"github.com/wonny/trendlens/cmd/trends/commands"
)

// main is the entry point for the trends CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
