// Package main is the entry point for the rentora CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFiles []string

func main() {
	root := &cobra.Command{
		Use:           "rentora",
		Short:         "Rental listings service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newHashPasswordCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
