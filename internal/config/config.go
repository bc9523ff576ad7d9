// Package config loads the cargomcp user configuration. Precedence is
// environment variables over the TOML config file over built-in defaults,
// with dotenv files (.env, .env.local) filling missing environment values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables recognized at startup.
const (
	EnvSessionDir       = "CARGO_MCP_SESSION_DIR"
	EnvDefaultToolchain = "CARGO_MCP_DEFAULT_TOOLCHAIN"
	EnvVerbose          = "CARGO_MCP_VERBOSE"
)

type Config struct {
	// SessionDir holds the JSON session stores shared with sibling
	// tool-family servers.
	SessionDir string `toml:"session_dir"`
	// DefaultSession is the session id used when a caller names none.
	DefaultSession string `toml:"default_session"`
	// DefaultToolchain seeds the session default toolchain at startup.
	DefaultToolchain string `toml:"default_toolchain"`
	Verbose          bool   `toml:"verbose"`
}

func Default() Config {
	return Config{
		SessionDir:     "",
		DefaultSession: "default",
	}
}

// Load builds the effective configuration: defaults, then config.toml, then
// dotenv-backfilled environment variables.
func Load() (Config, error) {
	if err := loadDotEnvPrecedence(); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := mergeUserConfig(&cfg); err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	return cfg, nil
}

// Path returns the location of the user's config.toml.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "cargomcp", "config.toml"), nil
}

// Save writes cfg to the user config file, creating directories as needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// loadDotEnvPrecedence backfills process env from .env then .env.local;
// values already present in the shell environment win.
func loadDotEnvPrecedence() error {
	for _, name := range []string{".env", ".env.local"} {
		values, err := godotenv.Read(name)
		if err != nil {
			continue
		}
		for k, v := range values {
			if _, exists := os.LookupEnv(k); !exists {
				if setErr := os.Setenv(k, v); setErr != nil {
					return setErr
				}
			}
		}
	}
	return nil
}

func mergeUserConfig(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	_, err = toml.DecodeFile(path, cfg)
	return err
}

func mergeEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSessionDir)); v != "" {
		cfg.SessionDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultToolchain)); v != "" {
		cfg.DefaultToolchain = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVerbose)); v != "" {
		cfg.Verbose = v == "1" || strings.EqualFold(v, "true")
	}
}

// Keys returns the settable config keys for the config CLI command.
func Keys() []string {
	return []string{"session_dir", "default_session", "default_toolchain", "verbose"}
}

// Get reads one field by key name.
func Get(cfg Config, key string) (string, error) {
	switch key {
	case "session_dir":
		return cfg.SessionDir, nil
	case "default_session":
		return cfg.DefaultSession, nil
	case "default_toolchain":
		return cfg.DefaultToolchain, nil
	case "verbose":
		if cfg.Verbose {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set writes one field by key name, validating the value.
func Set(cfg *Config, key, value string) error {
	switch key {
	case "session_dir":
		cfg.SessionDir = value
	case "default_session":
		if strings.TrimSpace(value) == "" {
			return errors.New("default_session must not be empty")
		}
		cfg.DefaultSession = value
	case "default_toolchain":
		cfg.DefaultToolchain = value
	case "verbose":
		if value != "true" && value != "false" {
			return fmt.Errorf("verbose must be \"true\" or \"false\", got %q", value)
		}
		cfg.Verbose = value == "true"
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
