package appconfig

import (
	"os"
	"path/filepath"

	"github.com/NexusOnePlus/spacedrive/internal/persist"
	"github.com/NexusOnePlus/spacedrive/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	StateDir      string        `mapstructure:"state_dir" yaml:"state_dir"`
	Storage       StorageConfig `mapstructure:"storage" yaml:"storage"`
	Tabs          TabsConfig    `mapstructure:"tabs" yaml:"tabs"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// StorageConfig selects where the workspace snapshot is kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	Key     string `mapstructure:"key" yaml:"key"`
}

// TabsConfig controls tab manager behavior.
type TabsConfig struct {
	DefaultNewTabPath string `mapstructure:"default_new_tab_path" yaml:"default_new_tab_path"`
	PersistDebounceMS int    `mapstructure:"persist_debounce_ms" yaml:"persist_debounce_ms"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		StateDir:      filepath.Join(home, ".spacedrive", "state"),
		Storage: StorageConfig{
			Backend: string(persist.BackendFile),
			Path:    "",
			Key:     persist.DefaultKey,
		},
		Tabs: TabsConfig{
			DefaultNewTabPath: schema.DefaultNewTabPath,
			PersistDebounceMS: 0,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".spacedrive", "tabs.yaml"), nil
}
