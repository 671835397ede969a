package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Krishmal2004/Expense-Tracker/internal/auth"
	"github.com/Krishmal2004/Expense-Tracker/internal/config"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
	"github.com/Krishmal2004/Expense-Tracker/internal/storage/sqlite"
	"github.com/Krishmal2004/Expense-Tracker/pkg/logging"
)

var (
	flagConfig  string
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Personal expense ledger with monthly budget warnings",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "TOML config file (default $LEDGER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file loaded before the environment")
}

// setup loads and validates configuration and installs the logger.
func setup(requireSecret bool) (config.Config, *time.Location, error) {
	cfg, err := config.Load(config.Options{ConfigFile: flagConfig, EnvFile: flagEnvFile})
	if err != nil {
		return cfg, nil, err
	}
	if err := cfg.Validate(requireSecret); err != nil {
		return cfg, nil, err
	}

	logging.Setup(cfg.Log.Level, os.Stderr)

	loc, err := cfg.Location()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, loc, nil
}

func openStore(cfg config.Config) (*sqlite.SQLiteStore, error) {
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger store: %w", err)
	}
	return store, nil
}

func lookupUser(ctx context.Context, store *sqlite.SQLiteStore, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("--email is required")
	}
	user, err := store.GetUserByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no user registered as %s", email)
	}
	return user, nil
}
