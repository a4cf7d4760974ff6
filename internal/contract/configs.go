package contract

import (
	"fmt"
	"strings"

	"github.com/grantscope/grantscope/schema"
)

// Default values for configuration.
const (
	DefaultStaleDays        = 60
	DefaultFastApprovalDays = 14
	DefaultResultLimit      = 25
	MaxResultLimit          = 1000
	DefaultWorkers          = 4
	DefaultPrecision        = 1
)

// Program identifies one tracked grant program repository.
type Program struct {
	Key         string `mapstructure:"key"`
	Owner       string `mapstructure:"owner"`
	Repo        string `mapstructure:"repo"`
	Description string `mapstructure:"description"`
}

// DefaultPrograms lists the grant programs tracked when no configuration
// file overrides them.
var DefaultPrograms = []Program{
	{Key: "w3f_grants", Owner: "w3f", Repo: "Grants-Program", Description: "Web3 Foundation Grants Program"},
	{Key: "polkadot_fast_grants", Owner: "Polkadot-Fast-Grants", Repo: "apply", Description: "Polkadot Fast Grants"},
	{Key: "use_inkubator", Owner: "use-inkubator", Repo: "Ecosystem-Grants", Description: "Use Inkubator Ecosystem Grants"},
	{Key: "polkadot_open_source", Owner: "PolkadotOpenSourceGrants", Repo: "apply", Description: "Polkadot Open Source Grants"},
}

// Config holds the validated runtime configuration for the pipeline.
// It is immutable once built; nothing reads ambient global state.
type Config struct {
	Programs []Program

	StaleDays        int // open proposals older than this are STALE (strictly greater)
	FastApprovalDays int // decisions faster than this earn the speed bonus

	Workers     int
	ResultLimit int
	Precision   int

	Output     schema.OutputMode
	OutputFile string
	Detail     bool
	Explain    bool
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	GitHubToken string
	APIBaseURL  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct; ProcessAndValidate turns it
// into a Config.
type ConfigRawInput struct {
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Detail           bool   `mapstructure:"detail"`
	Explain          bool   `mapstructure:"explain"`
	Color            string `mapstructure:"color"`
	StaleDays        int    `mapstructure:"stale-days"`
	FastApprovalDays int    `mapstructure:"fast-approval-days"`
	StoreBackend     string `mapstructure:"store-backend"`
	StoreDBConnect   string `mapstructure:"store-db-connect"`
	GitHubToken      string `mapstructure:"github-token"`
	APIBaseURL       string `mapstructure:"api-base-url"`

	// Programs comes from the config file only.
	Programs []Program `mapstructure:"programs"`
}

// ProgramByKey returns the configured program with the given key.
func (c *Config) ProgramByKey(key string) (Program, bool) {
	for _, p := range c.Programs {
		if p.Key == key {
			return p, true
		}
	}
	return Program{}, false
}

// TrackedKeys returns the configured program keys in order.
func (c *Config) TrackedKeys() []string {
	keys := make([]string, 0, len(c.Programs))
	for _, p := range c.Programs {
		keys = append(keys, p.Key)
	}
	return keys
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Programs != nil {
		clone.Programs = make([]Program, len(c.Programs))
		copy(clone.Programs, c.Programs)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Threshold Validation ---
	if input.StaleDays <= 0 {
		return fmt.Errorf("stale-days must be greater than 0 (received %d)", input.StaleDays)
	}
	cfg.StaleDays = input.StaleDays

	if input.FastApprovalDays <= 0 {
		return fmt.Errorf("fast-approval-days must be greater than 0 (received %d)", input.FastApprovalDays)
	}
	cfg.FastApprovalDays = input.FastApprovalDays

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 5. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- 6. Programs Processing ---
	programs := input.Programs
	if len(programs) == 0 {
		programs = DefaultPrograms
	}
	seen := make(map[string]struct{}, len(programs))
	for _, p := range programs {
		if p.Key == "" || p.Owner == "" || p.Repo == "" {
			return fmt.Errorf("program entries need key, owner and repo (got key=%q owner=%q repo=%q)", p.Key, p.Owner, p.Repo)
		}
		if _, dup := seen[p.Key]; dup {
			return fmt.Errorf("duplicate program key %q", p.Key)
		}
		seen[p.Key] = struct{}{}
	}
	cfg.Programs = make([]Program, len(programs))
	copy(cfg.Programs, programs)

	// --- 7. Source Settings ---
	cfg.GitHubToken = input.GitHubToken
	cfg.APIBaseURL = strings.TrimRight(input.APIBaseURL, "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://api.github.com"
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter or use a postgres:// URL")
		}
	}
	return nil
}
