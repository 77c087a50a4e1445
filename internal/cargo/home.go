package cargo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestFile is the name of cargo's install-state file.
const ManifestFile = ".crates.toml"

// DefaultHomeDir is the cargo home under $HOME when nothing else is set.
const DefaultHomeDir = ".cargo"

// ManifestPath returns the path of .crates.toml under home.
func ManifestPath(home string) string {
	return filepath.Join(home, ManifestFile)
}

// DefaultHome returns ~/.cargo.
func DefaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultHomeDir), nil
}

// ReadManifest returns the manifest text at path, or "" if the file does
// not exist. Any other read failure is returned.
func ReadManifest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
