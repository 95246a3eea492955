package main

import (
	"os"

	"github.com/gitpress-labs/gitpress/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
