package main

import (
	"os"

	"github.com/alideep5/feedrank/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
