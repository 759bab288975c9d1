package main

import (
	"fmt"
	"os"

	"github.com/benvon/date-night/cmd/datenightctl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:           "datenightctl",
		Short:         "Administration tool for the date night API",
		Long:          "CLI tool for database migrations, the idea table and per-user planner usage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewMigrateCmd())
	rootCmd.AddCommand(commands.NewIdeasCmd())
	rootCmd.AddCommand(commands.NewUsageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
