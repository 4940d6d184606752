// Package config locates and reads the siteaudit YAML configuration file and
// overlays it on the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// AppName is the directory name used under the XDG base directories
const AppName = "siteaudit"

// DefaultConfigFile is the file name looked up in the current directory.
const DefaultConfigFile = ".siteaudit.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// XDGConfigFile returns the per-user configuration path, e.g.
// ~/.config/siteaudit/config.yaml
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .siteaudit.yaml in the current directory
// 3. Look for siteaudit/config.yaml under the XDG config home
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if _, err := os.Stat(XDGConfigFile()); err == nil {
		return XDGConfigFile()
	}

	return ""
}

// LoadConfigFile reads path and overlays it on types.DefaultConfig().
// Durations are written the way time.ParseDuration reads them ("90s", "5m").
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (types.Config, error) {
	config := types.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return config, ErrConfigNotFound
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return types.DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return config, nil
}

// Load finds and reads the configuration file. An explicit configPath that
// does not exist is an error; a missing implicit file just yields the defaults.
func Load(configPath string) (types.Config, string, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return types.DefaultConfig(), "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return types.DefaultConfig(), "", nil
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		return config, path, err
	}
	return config, path, nil
}
