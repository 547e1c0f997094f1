package main

import (
	"os"

	"trade-cost/cmd/cli/cmd"
	"trade-cost/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
