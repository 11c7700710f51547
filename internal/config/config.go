// Package config provides configuration management for netfabric.
//
// Config file locations (priority order):
//  1. $NETFABRIC_CONFIG
//  2. ./netfabric.yaml
//  3. ~/.config/netfabric/config.yaml
//  4. /etc/netfabric/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	NetBox   NetBoxConfig   `yaml:"netbox"`
	Database DatabaseConfig `yaml:"database"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// NetBoxConfig holds the source-of-truth API settings. When URL is empty
// the engine runs offline against a snapshot file.
type NetBoxConfig struct {
	URL         string   `yaml:"url"`
	Token       string   `yaml:"token"`
	PageSize    int      `yaml:"page_size"`
	Parallelism int      `yaml:"parallelism"`
	Timeout     Duration `yaml:"timeout"`
}

// Duration wraps time.Duration so config files can use "30s" notation.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// DatabaseConfig holds the run-archive settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SnapshotConfig points at an offline snapshot file and controls whether
// changes to it trigger a new resolution run.
type SnapshotConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.NetBox.PageSize == 0 {
		c.NetBox.PageSize = 500
	}
	if c.NetBox.Parallelism == 0 {
		c.NetBox.Parallelism = 4
	}
	if c.NetBox.Timeout == 0 {
		c.NetBox.Timeout = Duration(30 * time.Second)
	}
	if c.Database.Path == "" {
		c.Database.Path = "./netfabric.db"
	}
}

// Offline reports whether the engine should load snapshots from disk
// instead of fetching from the API.
func (c *Config) Offline() bool {
	return c.NetBox.URL == ""
}
