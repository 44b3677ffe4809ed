// Package config loads the per-user settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config holds the tunables the app reads at startup. Everything has a
// default; the file and both env overrides are optional.
type Config struct {
	StorePath  string `yaml:"store_path"`  // SQLite file; "" = ~/.shoplist/shoplist.sqlite3
	DebounceMS int    `yaml:"debounce_ms"` // trailing write-back window
	Lang       string `yaml:"lang"`        // ui language: en|es|cs|de
	ShareBase  string `yaml:"share_base"`  // base URL used when building share links
	Theme      string `yaml:"theme"`       // classic|neon|mono
}

func Default() Config {
	return Config{
		DebounceMS: 500,
		Lang:       "en",
		ShareBase:  "https://shoplist.app/",
		Theme:      "classic",
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".shoplist"), nil
}

// Load reads ~/.shoplist/config.yaml on top of the defaults. A missing
// file is not an error. SHOPLIST_LANG and SHOPLIST_STORE override the
// file.
func Load() (Config, error) {
	cfg := Default()
	dir, err := configDir()
	if err != nil {
		return applyEnv(cfg), err
	}
	b, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return applyEnv(Default()), fmt.Errorf("parse config: %w", err)
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = Default().DebounceMS
	}
	return applyEnv(cfg), nil
}

// Save writes the config back, creating ~/.shoplist with owner-only
// permissions.
func Save(cfg Config) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFileName), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_LANG")); v != "" {
		cfg.Lang = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_STORE")); v != "" {
		cfg.StorePath = v
	}
	return cfg
}

// Debounce converts the configured window to a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
