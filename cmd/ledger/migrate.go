package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Krishmal2004/Expense-Tracker/internal/storage/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and print the schema version",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(false)
	if err != nil {
		return err
	}

	version, err := sqlite.Migrate(cfg.Database.Path)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is at schema version %d\n", cfg.Database.Path, version)
	return nil
}
