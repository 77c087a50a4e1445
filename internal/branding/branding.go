// Package branding holds the tool's name, its config directory and its
// environment prefix, read from the embedded branding.yaml.
package branding

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawIdentity []byte

// Identity names the tool and where it keeps its own state.
type Identity struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

var fallback = Identity{
	CLIName:     "cargo-ensure",
	DisplayName: "cargo-ensure",
	Description: "Install a cargo package only when needed",
	HomeDir:     ".cargo-ensure",
	EnvPrefix:   "CARGO_ENSURE",
}

var current = sync.OnceValue(func() Identity {
	id, err := parseIdentity(rawIdentity)
	if err != nil {
		return fallback
	}
	return id
})

// parseIdentity overlays data on the fallback identity. Keys missing from
// data keep their fallback value.
func parseIdentity(data []byte) (Identity, error) {
	id := fallback
	if err := yaml.Unmarshal(data, &id); err != nil {
		return fallback, fmt.Errorf("decoding branding: %w", err)
	}
	if id.EnvPrefix != strings.ToUpper(id.EnvPrefix) || strings.ContainsAny(id.EnvPrefix, " -") {
		return fallback, fmt.Errorf("env_prefix %q is not an upper-case identifier", id.EnvPrefix)
	}
	if strings.ContainsAny(id.HomeDir, `/\`) {
		return fallback, fmt.Errorf("home_dir %q must be a single path element", id.HomeDir)
	}
	return id, nil
}

func CLIName() string     { return current().CLIName }
func DisplayName() string { return current().DisplayName }
func Description() string { return current().Description }

// HomeDir is the directory under $HOME holding config.yaml.
func HomeDir() string { return current().HomeDir }

func EnvPrefix() string { return current().EnvPrefix }

// EnvVar qualifies a config key with the env prefix:
// EnvVar("cargo_home") is "CARGO_ENSURE_CARGO_HOME".
func EnvVar(key string) string {
	return current().EnvPrefix + "_" + strings.ToUpper(key)
}
