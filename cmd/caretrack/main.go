package main

import (
	"os"

	"github.com/spf13/cobra"

	"caretrack/internal/interfaces/cli/migrate"
	"caretrack/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caretrack",
		Short: "CareTrack - healthcare complaint tracking",
		Long:  `CareTrack tracks patient complaints across departments, with per-role permissions, audit logging, and admin impersonation.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
