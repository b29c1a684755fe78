package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assistitk12/assistitk12/internal/interfaces/cli/importusers"
	"github.com/assistitk12/assistitk12/internal/interfaces/cli/migrate"
	"github.com/assistitk12/assistitk12/internal/interfaces/cli/seed"
	"github.com/assistitk12/assistitk12/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "assistit",
		Short:        "AssistITK12 - IT helpdesk for school districts",
		Long:         `AssistITK12 serves the helpdesk API and ships the migration, seed and import tools that go with it.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		importusers.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
