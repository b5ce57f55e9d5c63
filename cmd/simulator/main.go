package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "simulator",
		Short: "Synthetic load and concurrency tooling for the matching gateway",
	}
	root.AddCommand(loadCmd(), lockDemoCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
