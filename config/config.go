// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreFS     = "fs"
	StoreBadger = "badger"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "JSONSTORE"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of a store and of the tools built on it.
type Config struct {
	// Root is the folder that holds one subfolder per item type.
	Root string `mapstructure:"root"`

	// ItemType is the type folder the read cache serves.
	// Optional; enabling the cache without it fails.
	ItemType string `mapstructure:"item_type"`

	// Store selects the file system: "fs" for the local disk or "badger"
	// for an embedded BadgerDB database.
	// Default: "fs"
	Store string `mapstructure:"store"`

	// BadgerPath is the database folder when Store is "badger".
	// Default: <Root>/.jsonstore.db
	BadgerPath string `mapstructure:"badger_path"`

	// ReadConcurrency is how many files are read at once during a load.
	// Default: 1
	ReadConcurrency int `mapstructure:"read_concurrency"`

	// Policy is the merge policy used by bulk inserts: "skip" or "overwrite".
	// Default: "skip"
	Policy string `mapstructure:"policy"`

	// BatchSize is how many items an import merges per save.
	// Default: 500
	BatchSize int `mapstructure:"batch_size"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `mapstructure:"log_level"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithRoot sets the root folder.
func WithRoot(root string) ConfigOption {
	return func(c *Config) {
		c.Root = root
	}
}

// WithItemType sets the cached item type.
func WithItemType(itemType string) ConfigOption {
	return func(c *Config) {
		c.ItemType = itemType
	}
}

// WithStore selects the file system backend.
func WithStore(store string) ConfigOption {
	return func(c *Config) {
		c.Store = store
	}
}

// WithBadgerPath sets the BadgerDB folder.
func WithBadgerPath(path string) ConfigOption {
	return func(c *Config) {
		c.BadgerPath = path
	}
}

// WithReadConcurrency sets how many files are read at once.
func WithReadConcurrency(n int) ConfigOption {
	return func(c *Config) {
		c.ReadConcurrency = n
	}
}

// WithPolicy sets the bulk insert merge policy.
func WithPolicy(policy string) ConfigOption {
	return func(c *Config) {
		c.Policy = policy
	}
}

// WithBatchSize sets the import batch size.
func WithBatchSize(n int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = n
	}
}

// DefaultConfig returns a Config storing under ./data on the local disk.
func DefaultConfig() *Config {
	return &Config{
		Root:            "data",
		Store:           StoreFS,
		ReadConcurrency: 1,
		Policy:          "skip",
		BatchSize:       500,
		LogLevel:        "info",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//		WithRoot("/var/lib/widgets"),
//		WithItemType("widget"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form. Enum values are
// lower-cased and defaulted when empty, and BadgerPath is derived from Root
// when unset.
func (c *Config) Normalize() {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.Policy = strings.ToLower(strings.TrimSpace(c.Policy))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Store == "" {
		c.Store = StoreFS
	}
	if c.Policy == "" {
		c.Policy = "skip"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Root != "" {
		c.Root = filepath.Clean(c.Root)
	}
	if c.Store == StoreBadger && c.BadgerPath == "" && c.Root != "" {
		c.BadgerPath = filepath.Join(c.Root, ".jsonstore.db")
	}
	if c.ReadConcurrency < 1 {
		c.ReadConcurrency = 1
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Root == "" {
		return fmt.Errorf("%w: root is required", ErrInvalidConfig)
	}
	if c.Store != StoreFS && c.Store != StoreBadger {
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.Policy != "skip" && c.Policy != "overwrite" {
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Policy)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch_size must be positive", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Load reads the configuration from the YAML file at path, then from
// JSONSTORE_* environment variables, on top of DefaultConfig.
// An empty path skips the file. The result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("root", cfg.Root)
	v.SetDefault("item_type", cfg.ItemType)
	v.SetDefault("store", cfg.Store)
	v.SetDefault("badger_path", cfg.BadgerPath)
	v.SetDefault("read_concurrency", cfg.ReadConcurrency)
	v.SetDefault("policy", cfg.Policy)
	v.SetDefault("batch_size", cfg.BatchSize)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
