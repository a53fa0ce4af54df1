package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/nexus/pkg/app"
)

// nexus migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users table if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLogs, err := boot()
		if err != nil {
			return err
		}
		defer closeLogs()

		fmt.Fprintf(cmd.OutOrStdout(), "Migrating %s…\n", cfg.DatabaseDriver)
		if err := app.Migrate(withContext(cmd), cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅  Schema is up to date")
		return nil
	},
}
