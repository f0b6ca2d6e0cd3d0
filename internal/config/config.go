package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/deckgym/deckaudit/internal/identifier"
	"github.com/deckgym/deckaudit/internal/provider"
)

// ErrExists is returned by Init when a config file is already present
var ErrExists = errors.New("config file already exists")

// Config represents the audit configuration
type Config struct {
	Database string  `toml:"database"`
	Provider string  `toml:"provider"`
	Manifest string  `toml:"manifest,omitempty"`
	Sources  Sources `toml:"sources"`
}

// Sources holds the implementation artifact scanned for each effect category
type Sources struct {
	Attacks   string `toml:"attacks"`
	Abilities string `toml:"abilities"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Database: "database.json",
		Provider: provider.KindSource,
		Sources: Sources{
			Attacks:   filepath.Join("src", "actions", "apply_attack_action.rs"),
			Abilities: filepath.Join("src", "actions", "apply_abilities_action.rs"),
		},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the user config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "deckaudit", "config.toml")
}

// Load loads the config file at path. An empty path selects the user config
// file, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = GetConfigFilePath()
	}

	config := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return config, nil
	}

	// Keys absent from the file keep their defaults
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// Init writes the default config to path, creating its directory
func Init(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}

	return config, nil
}

// Validate checks the provider selection
func (c *Config) Validate() error {
	if c.Database == "" {
		return errors.New("database path is required")
	}
	if !slices.Contains(provider.Kinds, c.Provider) {
		return fmt.Errorf("%w: %q (supported: %v)", provider.ErrUnknownKind, c.Provider, provider.Kinds)
	}
	if c.Provider == provider.KindManifest && c.Manifest == "" {
		return errors.New("manifest provider requires a manifest path")
	}
	return nil
}

// SourceMap returns the artifact paths keyed by category
func (c *Config) SourceMap() map[identifier.Category]string {
	return map[identifier.Category]string{
		identifier.Attack:  c.Sources.Attacks,
		identifier.Ability: c.Sources.Abilities,
	}
}
