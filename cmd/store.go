package cmd

import (
	"fmt"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/internal/outwriter"
	"github.com/grantscope/grantscope/internal/store"
	"github.com/grantscope/grantscope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.Precision = viper.GetInt("precision")
	if cfg.Precision < 1 {
		cfg.Precision = contract.DefaultPrecision
	}

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// openStore builds the store from the minimal config.
func openStore() (contract.ProposalStore, error) {
	return store.NewSQLStore(cfg.StoreBackend, cfg.StoreDBConnect)
}

// storeCmd focused on store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by report commands. This avoids program list
// validation and source configuration for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the proposal store (persistence across runs)",
	Long: `Manage the persistence layer that keeps the normalized proposal table
and the latest metrics snapshot between runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  migrate - Run versioned schema migrations

Examples:
  # Check store status
  grantscope store status

  # Clear stored data before switching programs
  grantscope store clear`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the proposal store.

Displays:
- Backend type
- Number of stored proposals
- When the latest metrics snapshot was saved

Examples:
  # Check store status
  grantscope store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		s, err := openStore()
		if err != nil {
			contract.LogFatal("Failed to open store", err)
		}
		defer func() { _ = s.Close() }()

		status, err := s.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.WriteStoreStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print store status", err)
		}
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored proposals and snapshots",
	Long: `Delete all stored proposal and snapshot data from the configured backend.

Use this when:
- Switching the tracked program list
- The stored table may be stale or corrupted
- Testing a refresh from a clean slate

Examples:
  # Clear SQLite store (default)
  grantscope store clear

  # Clear MySQL store (set connection string via env variable)
  GRANTSCOPE_STORE_BACKEND=mysql GRANTSCOPE_STORE_DB_CONNECT="..." grantscope store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		s, err := openStore()
		if err != nil {
			contract.LogFatal("Failed to open store", err)
		}
		defer func() { _ = s.Close() }()

		if err := s.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run versioned schema migrations for the store",
	Long: `Apply versioned schema migrations to the configured store backend.

By default migrates to the latest version. Use --target-version to pin a
specific version, or 0 to roll everything back.

Examples:
  # Migrate to latest
  grantscope store migrate

  # Roll back everything
  grantscope store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
