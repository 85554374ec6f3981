// Package config loads run configuration from an optional recat.yaml file
// and RECAT_* environment variables (including a .env file). Command-line
// flags override both.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultImbalancePattern matches the holding-account names an importer
// assigns when it cannot determine the counter-account, e.g. "Imbalance-USD".
const DefaultImbalancePattern = `Imbalance-[A-Z]{3}`

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "recat.yaml"

// Config holds the run defaults. Everything here can be overridden by flags.
type Config struct {
	Store            string `yaml:"store,omitempty"`
	Rules            string `yaml:"rules,omitempty"`
	ImbalancePattern string `yaml:"imbalance_pattern"`
	UseMemo          bool   `yaml:"use_memo"`
	AuditLog         string `yaml:"audit_log,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ImbalancePattern: DefaultImbalancePattern,
	}
}

// Load reads configuration. A named file must exist; with path == "" the
// default file is used if present and silently skipped otherwise. A .env
// file and RECAT_* environment variables are applied on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	name := path
	if name == "" {
		name = DefaultFile
	}
	data, err := os.ReadFile(name)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", name, err)
		}
	case os.IsNotExist(err) && path == "":
		// No config file is fine; defaults apply.
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	_ = godotenv.Load() // .env is optional
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.ImbalancePattern == "" {
		cfg.ImbalancePattern = DefaultImbalancePattern
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
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

func (c *Config) applyEnv() error {
	if v := os.Getenv("RECAT_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("RECAT_RULES"); v != "" {
		c.Rules = v
	}
	if v := os.Getenv("RECAT_IMBALANCE_PATTERN"); v != "" {
		c.ImbalancePattern = v
	}
	if v := os.Getenv("RECAT_AUDIT_LOG"); v != "" {
		c.AuditLog = v
	}
	if v := os.Getenv("RECAT_USE_MEMO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RECAT_USE_MEMO %q: %w", v, err)
		}
		c.UseMemo = b
	}
	return nil
}
