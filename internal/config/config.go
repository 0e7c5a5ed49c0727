// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package config loads CLI configuration. Sources are layered: built-in
// defaults, then the YAML config file, then the DATABASE_URL environment
// variable, then command-line flags.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the resolved CLI configuration.
type Config struct {
	DatabaseURL string    `koanf:"database_url"`
	Log         LogConfig `koanf:"log"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Format  string `koanf:"format"`
	Service string `koanf:"service"`
}

// flagKeys maps command-line flag names to config keys so posflag values
// land on the right fields.
var flagKeys = map[string]string{
	"database-url": "database_url",
	"log-format":   "log.format",
}

// Load resolves configuration from the given file path and flag set. Both
// may be empty: a missing explicit file is an error, a missing default
// file is not. flags may be nil.
func Load(path string, explicit bool, flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Format:  "json",
			Service: "lms",
		},
	}

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
			}
		}
	}

	if flags != nil {
		// Returning an empty key skips the flag: unchanged flags must not
		// clobber file or environment values with their defaults.
		provider := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
			if !flags.Changed(key) {
				return "", nil
			}
			if mapped, ok := flagKeys[key]; ok {
				return mapped, value
			}
			return key, value
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return cfg, nil
}

// RequireDatabaseURL returns the database URL or an error when no source
// provided one.
func (c *Config) RequireDatabaseURL() (string, error) {
	if c.DatabaseURL == "" {
		return "", oops.Code("CONFIG_INVALID").
			Errorf("database URL is required: set database_url in the config file, DATABASE_URL in the environment, or --database-url")
	}
	return c.DatabaseURL, nil
}
