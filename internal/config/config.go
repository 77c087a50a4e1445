package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentx-labs/cargo-ensure/internal/branding"
	"github.com/agentx-labs/cargo-ensure/internal/cargo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyCargoHome = "cargo_home"
	KeyCargoBin  = "cargo_bin"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

var defaults = map[string]string{
	KeyCargoBin:  "cargo",
	KeyLogLevel:  "info",
	KeyLogFormat: "text",
}

// Settings are the resolved values handed to commands.
type Settings struct {
	CargoHome string
	CargoBin  string
	LogLevel  string
	LogFormat string
}

// ManifestPath returns the .crates.toml path under the resolved cargo home.
func (s Settings) ManifestPath() string {
	return cargo.ManifestPath(s.CargoHome)
}

// Dir returns the path to the config directory (~/.cargo-ensure/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.cargo-ensure/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Keys returns the known setting keys in sorted order.
func Keys() []string {
	keys := []string{KeyCargoHome, KeyCargoBin, KeyLogLevel, KeyLogFormat}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a recognised setting.
func IsKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Config layers flags over environment over the config file over defaults.
type Config struct {
	v    *viper.Viper
	path string
}

// Load reads the config file at path (FilePath() when empty) if it exists
// and wires environment lookup. cargo_home also honours CARGO_HOME.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	if err := v.BindEnv(KeyCargoHome, branding.EnvVar(KeyCargoHome), "CARGO_HOME"); err != nil {
		return nil, fmt.Errorf("binding %s environment: %w", KeyCargoHome, err)
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	return &Config{v: v, path: path}, nil
}

// BindFlag makes a command-line flag take precedence for key when it is set.
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: flag not defined", key)
	}
	return c.v.BindPFlag(key, flag)
}

// Path returns the config file path backing this Config.
func (c *Config) Path() string {
	return c.path
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Settings resolves all keys. An unset cargo home falls back to ~/.cargo.
func (c *Config) Settings() (Settings, error) {
	s := Settings{
		CargoHome: c.v.GetString(KeyCargoHome),
		CargoBin:  c.v.GetString(KeyCargoBin),
		LogLevel:  c.v.GetString(KeyLogLevel),
		LogFormat: c.v.GetString(KeyLogFormat),
	}
	if s.CargoHome == "" {
		home, err := cargo.DefaultHome()
		if err != nil {
			return Settings{}, err
		}
		s.CargoHome = home
	}
	return s, nil
}

// Set writes a key-value pair to the config file. Only values already in
// the file and the new key are written; environment and flag values are
// never persisted.
func (c *Config) Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys())
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(c.path), err)
	}

	file := viper.New()
	file.SetConfigFile(c.path)
	file.SetConfigType(fileType)
	if _, err := os.Stat(c.path); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", c.path, err)
		}
	}
	file.Set(key, value)

	if err := file.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
