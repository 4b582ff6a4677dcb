package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. NEXUSSHELF_BACKEND_KIND.
const EnvPrefix = "NEXUSSHELF"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nexusshelf", "config.yml")
}

// Path returns the config file in effect: NEXUSSHELF_CONFIG or the default.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads the config from Path(). A missing file yields the defaults;
// the init command writes one.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config from configPath, with environment overrides.
func LoadFile(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("backend.kind", "supabase")
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.key_env", "SUPABASE_KEY")
	v.SetDefault("backend.dsn", "")
	v.SetDefault("backend.path", "")
	v.SetDefault("backend.table", "books")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("suggest.model", "gemini-3-flash-preview")
	v.SetDefault("suggest.temperature", 0.5)
	v.SetDefault("suggest.timeout", 15*time.Second)
	v.SetDefault("suggest.key_env", "GEMINI_API_KEY")
	v.SetDefault("defaults.data_dir", defaultDataDir())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("serve.host", "127.0.0.1")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine: the init command creates it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Defaults.DataDir = ExpandHome(cfg.Defaults.DataDir)
	if cfg.Backend.Path == "" {
		cfg.Backend.Path = filepath.Join(cfg.Defaults.DataDir, "catalog.db")
	}
	cfg.Backend.Path = ExpandHome(cfg.Backend.Path)
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Defaults.DataDir, "nexusshelf.log")
	}
	cfg.Log.File = ExpandHome(cfg.Log.File)

	// Resolve keys from env (never stored in file).
	cfg.Backend.Key = envOr(cfg.Backend.KeyEnv, "SUPABASE_KEY", EnvPrefix+"_SUPABASE_KEY")
	cfg.Suggest.APIKey = envOr(cfg.Suggest.KeyEnv, "GEMINI_API_KEY", "API_KEY")

	return &cfg, nil
}

// envOr returns the first non-empty variable among name (or def when
// name is empty) and the fallbacks.
func envOr(name, def string, fallbacks ...string) string {
	if name == "" {
		name = def
	}
	if v := os.Getenv(name); v != "" {
		return v
	}
	for _, f := range fallbacks {
		if v := os.Getenv(f); v != "" {
			return v
		}
	}
	return ""
}

// Save writes the config to Path().
func Save(cfg *Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path as YAML.
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return enc.Close()
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nexusshelf")
}
