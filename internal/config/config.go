// Package config loads reschool settings from defaults, an optional YAML
// file, a .env file and RESCHOOL_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/reschool/internal/eschool"
	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every user-tunable setting.
type Config struct {
	BaseURL      string `yaml:"base_url"`
	TimeoutMs    int    `yaml:"timeout_ms"`
	DBPath       string `yaml:"db_path"`
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
	LogCalls     bool   `yaml:"log_calls"`
	OrphanPolicy string `yaml:"orphan_policy"`
}

// Sources names where Load looks for its inputs. Empty fields fall back to
// the defaults under ~/.reschool and ./.env.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// Dir returns ~/.reschool.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".reschool"), nil
}

// Default returns the built-in settings.
func Default() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	ec := eschool.DefaultConfig()
	return Config{
		BaseURL:      ec.BaseURL,
		TimeoutMs:    ec.TimeoutMs,
		DBPath:       filepath.Join(dir, "reschool.db"),
		LogLevel:     "info",
		LogFile:      filepath.Join(dir, "reschool.log"),
		OrphanPolicy: periods.DropOrphans.String(),
	}, nil
}

// Load builds the effective configuration. A missing YAML or .env file is
// not an error; a malformed one is.
func Load(src Sources) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	path := src.ConfigFile
	if path == "" {
		path = os.Getenv("RESCHOOL_CONFIG")
	}
	if path == "" {
		dir, _ := Dir()
		path = filepath.Join(dir, "config.yaml")
	}
	if err := loadYAML(path, &cfg); err != nil {
		return Config{}, err
	}

	envFile := src.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv.Load never overrides variables already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	applyEnv(&cfg)
	if _, err := periods.ParseOrphanPolicy(cfg.OrphanPolicy); err != nil {
		return Config{}, fmt.Errorf("orphan_policy: %w", err)
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RESCHOOL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("RESCHOOL_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("RESCHOOL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("RESCHOOL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RESCHOOL_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("RESCHOOL_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("RESCHOOL_ORPHANS"); v != "" {
		cfg.OrphanPolicy = v
	}
}

// Eschool returns the portal client settings.
func (c Config) Eschool() eschool.Config {
	return eschool.Config{BaseURL: c.BaseURL, TimeoutMs: c.TimeoutMs, LogCalls: c.LogCalls}
}

// Periods returns the period tree options. Load has already rejected an
// unknown orphan policy.
func (c Config) Periods() periods.Options {
	policy, _ := periods.ParseOrphanPolicy(c.OrphanPolicy)
	return periods.Options{Orphans: policy}
}
