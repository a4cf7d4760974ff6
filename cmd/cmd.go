// Package cmd defines the command-line interface for grantscope.
package cmd

import (
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(proposalsCmd)
	rootCmd.AddCommand(programsCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(curatorsCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-target metadata (authors, engagement, approval days)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("stale-days", contract.DefaultStaleDays, "Days an open proposal can idle before it counts as stale")
	rootCmd.PersistentFlags().Int("fast-approval-days", contract.DefaultFastApprovalDays, "Decisions faster than this earn the speed bonus")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub API token (or GRANTSCOPE_GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("api-base-url", "", "GitHub API base URL override")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of proposalsCmd to Viper
	proposalsCmd.Flags().Bool("explain", false, "Print per-proposal component score breakdown")
	if err := viper.BindPFlags(proposalsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding proposals flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
