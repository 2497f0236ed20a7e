package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	verrs "github.com/veld-ui/veld/internal/errors"
)

// Default file name probed when no --config flag is given.
const DefaultFile = "veld.yaml"

// Config is the CLI/server configuration, loaded from YAML with
// environment overrides.
type Config struct {
	// Server configures `veld serve`.
	Server ServerConfig `yaml:"server"`

	// Deploy configures `veld deploy`.
	Deploy DeployConfig `yaml:"deploy"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// ServerConfig configures the live server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`

	// Title is the served page title.
	Title string `yaml:"title"`

	// SnapshotPath, when set, persists session snapshots in a bbolt file
	// at this path instead of in memory.
	SnapshotPath string `yaml:"snapshot_path"`
}

// DeployConfig configures static deployment to S3.
type DeployConfig struct {
	// Bucket is the target S3 bucket.
	Bucket string `yaml:"bucket"`

	// Prefix is the object key prefix (e.g. "site/").
	Prefix string `yaml:"prefix"`

	// Region is the AWS region.
	Region string `yaml:"region"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:  ":8420",
			Title: "veld app",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from path, falling back to defaults when the
// default file is absent. Environment variables override file values:
// VELD_ADDR, VELD_TITLE, VELD_SNAPSHOT_PATH, VELD_LOG_LEVEL.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := yaml.Unmarshal(raw, &cfg); uerr != nil {
			return cfg, verrs.New("E101", verrs.CategoryConfig, fmt.Sprintf("invalid config file %s", path)).
				Wrap(uerr).
				WithSuggestion("check the YAML syntax; the top-level keys are server, deploy, and log_level")
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return cfg, verrs.New("E102", verrs.CategoryConfig, fmt.Sprintf("cannot read config file %s", path)).Wrap(err)
	}

	applyEnv(&cfg)
	if verr := validate(cfg); verr != nil {
		return cfg, verr
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VELD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("VELD_TITLE"); v != "" {
		cfg.Server.Title = v
	}
	if v := os.Getenv("VELD_SNAPSHOT_PATH"); v != "" {
		cfg.Server.SnapshotPath = v
	}
	if v := os.Getenv("VELD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func validate(cfg Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return verrs.New("E103", verrs.CategoryConfig,
			fmt.Sprintf("unknown log level %q", cfg.LogLevel)).
			WithSuggestion("use one of: debug, info, warn, error")
	}
	if cfg.Server.Addr == "" {
		return verrs.New("E104", verrs.CategoryConfig, "server.addr must not be empty")
	}
	return nil
}
