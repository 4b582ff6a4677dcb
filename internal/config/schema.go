package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is the top-level nexusshelf configuration.
type Config struct {
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	Suggest  SuggestConfig  `mapstructure:"suggest" yaml:"suggest"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Serve    ServeConfig    `mapstructure:"serve" yaml:"serve"`
}

// BackendConfig selects where the catalog is persisted.
type BackendConfig struct {
	Kind    string        `mapstructure:"kind" yaml:"kind"` // supabase, postgres, sqlite or memory
	URL     string        `mapstructure:"url" yaml:"url,omitempty"`
	KeyEnv  string        `mapstructure:"key_env" yaml:"key_env"`
	DSN     string        `mapstructure:"dsn" yaml:"dsn,omitempty"`
	Path    string        `mapstructure:"path" yaml:"path,omitempty"`
	Table   string        `mapstructure:"table" yaml:"table"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Key     string        `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// SuggestConfig tunes the category suggestion model.
type SuggestConfig struct {
	Model       string        `mapstructure:"model" yaml:"model"`
	Temperature float32       `mapstructure:"temperature" yaml:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	KeyEnv      string        `mapstructure:"key_env" yaml:"key_env"`
	APIKey      string        `mapstructure:"-" yaml:"-"`
}

// DefaultsConfig holds local paths.
type DefaultsConfig struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// LogConfig controls the operator log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// ServeConfig is the HTTP API listen address.
type ServeConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// Addr returns host:port.
func (s ServeConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

var backendKinds = map[string]bool{"supabase": true, "postgres": true, "sqlite": true, "memory": true}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if !backendKinds[c.Backend.Kind] {
		return fmt.Errorf("backend.kind %q: want supabase, postgres, sqlite or memory", c.Backend.Kind)
	}
	switch c.Backend.Kind {
	case "supabase":
		if c.Backend.URL == "" {
			return fmt.Errorf("backend.url is required for the supabase backend")
		}
	case "postgres":
		if c.Backend.DSN == "" {
			return fmt.Errorf("backend.dsn is required for the postgres backend")
		}
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	if c.Suggest.Temperature < 0 || c.Suggest.Temperature > 2 {
		return fmt.Errorf("suggest.temperature must be between 0 and 2, got %v", c.Suggest.Temperature)
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}
	return nil
}
