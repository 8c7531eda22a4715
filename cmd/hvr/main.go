// Package main is the entry point for the hvr studio CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/evcraddock/hvr-studio/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
