package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/internal/store"
	"github.com/grantscope/grantscope/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg holds the validated, final configuration.
var cfg = &contract.Config{}

// input receives the raw merged values from viper (file, env, flags)
// before validation turns them into cfg.
var input = &contract.ConfigRawInput{}

// proposalStore is the global persistence instance.
var proposalStore contract.ProposalStore

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "grantscope",
	Short:              "Track and score grant proposals across GitHub-hosted programs.",
	Long:               `GrantScope normalizes messy proposal records from grant program repositories into consistent lifecycle categories, performance scores and approval metrics.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig wires viper's config sources and defaults.
func initConfig() {
	// A local .env carries the GitHub token during development.
	_ = godotenv.Load()

	setConfigSource()

	viper.SetEnvPrefix("GRANTSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("stale-days", contract.DefaultStaleDays)
	viper.SetDefault("fast-approval-days", contract.DefaultFastApprovalDays)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("github-token", "")
	viper.SetDefault("api-base-url", "")
	viper.SetDefault("color", "yes")
}

// setConfigSource points viper at an explicit --config file, or at the
// default .grantscope.yaml search path.
func setConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".grantscope")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// readConfigFile loads the config file if one exists. A missing file is
// fine; defaults, env and flags still apply.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals the merged config, validates it into cfg, and
// opens the proposal store. Runs as PreRunE for every data command.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	if err := readConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	s, err := store.NewSQLStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	proposalStore = s

	return nil
}

// sharedSetupWrapper adapts sharedSetup to Cobra's PreRunE signature.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile is the minimal config path for commands that skip full
// validation, like the store subcommands.
func loadConfigFile() error {
	setConfigSource()
	return readConfigFile()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// CloseStore releases the persistence layer if it was opened.
func CloseStore() error {
	if proposalStore != nil {
		return proposalStore.Close()
	}
	return nil
}
