package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/openaccounting/oadmin/internal/format"
	"github.com/openaccounting/oadmin/internal/log"
)

// FileName is the workspace config file.
const FileName = "oadmin.yaml"

// EnvFile is the optional dotenv file read from the workspace root.
const EnvFile = ".env"

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Environment overrides.
const (
	EnvStore      = "OADMIN_STORE"
	EnvSQLitePath = "OADMIN_SQLITE_PATH"
	EnvLogLevel   = "OADMIN_LOG_LEVEL"
	EnvPageSize   = "OADMIN_PAGE_SIZE"
)

// Config represents the top-level oadmin.yaml configuration.
type Config struct {
	Organisation OrganisationConfig `yaml:"organisation"`
	Dashboard    DashboardConfig    `yaml:"dashboard"`
	Store        StoreConfig        `yaml:"store"`
	Log          LogConfig          `yaml:"log"`
	Enrich       EnrichConfig       `yaml:"enrich"`
}

// OrganisationConfig names the operator of the platform.
type OrganisationConfig struct {
	Name string `yaml:"name"`
}

// DashboardConfig controls listings and KPI thresholds.
type DashboardConfig struct {
	QueuedAfterDays int    `yaml:"queued_after_days"`
	PageSize        int    `yaml:"page_size"`
	Currency        string `yaml:"currency"`
}

// StoreConfig selects where settings are persisted.
type StoreConfig struct {
	Backend    string `yaml:"backend"`     // "memory" or "sqlite"
	SQLitePath string `yaml:"sqlite_path"` // relative to the workspace
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// EnrichConfig locates enrichment CSVs.
type EnrichConfig struct {
	ImportDir string `yaml:"import_dir"`
}

// Load reads an oadmin.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(organisation string) *Config {
	return &Config{
		Organisation: OrganisationConfig{Name: organisation},
		Dashboard: DashboardConfig{
			QueuedAfterDays: 10,
			PageSize:        25,
			Currency:        "GBP",
		},
		Store: StoreConfig{
			Backend:    BackendMemory,
			SQLitePath: "data/oadmin.db",
		},
		Log:    LogConfig{Level: "info"},
		Enrich: EnrichConfig{ImportDir: "import"},
	}
}

// LoadEnvFile loads <dir>/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays OADMIN_* environment variables onto cfg. Unparseable
// numbers are left for Validate to report.
func (c *Config) ApplyEnv() error {
	c.Store.Backend = getEnv(EnvStore, c.Store.Backend)
	c.Store.SQLitePath = getEnv(EnvSQLitePath, c.Store.SQLitePath)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)

	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPageSize, v, err)
		}
		c.Dashboard.PageSize = n
	}
	return nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Dashboard.QueuedAfterDays < 0 {
		problems = append(problems, fmt.Sprintf("invalid queued_after_days %d: must not be negative", c.Dashboard.QueuedAfterDays))
	}
	if c.Dashboard.PageSize < 1 || c.Dashboard.PageSize > 500 {
		problems = append(problems, fmt.Sprintf("invalid page_size %d: must be between 1 and 500", c.Dashboard.PageSize))
	}
	if !format.IsCurrency(c.Dashboard.Currency) {
		problems = append(problems, fmt.Sprintf("invalid currency %q: not a supported ISO 4217 code", c.Dashboard.Currency))
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			problems = append(problems, "sqlite_path cannot be empty when using sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be one of [%s %s]", c.Store.Backend, BackendMemory, BackendSQLite))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// ResolvePath returns p relative to the workspace root unless it is absolute.
func ResolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
