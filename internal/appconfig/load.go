package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/NexusOnePlus/spacedrive/internal/persist"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SDTABS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("tabs.default_new_tab_path", cfg.Tabs.DefaultNewTabPath)
	v.SetDefault("tabs.persist_debounce_ms", cfg.Tabs.PersistDebounceMS)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	// SetConfigFile reports a missing explicit file as a plain fs error.
	return errors.Is(err, fs.ErrNotExist)
}

func validate(cfg Config) error {
	switch persist.Backend(strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))) {
	case persist.BackendFile, persist.BackendSQLite, persist.BackendMemory:
	default:
		return fmt.Errorf("unsupported storage.backend %q", cfg.Storage.Backend)
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if !strings.HasPrefix(cfg.Tabs.DefaultNewTabPath, "/") {
		return fmt.Errorf("tabs.default_new_tab_path must start with /")
	}
	if cfg.Tabs.PersistDebounceMS < 0 {
		return fmt.Errorf("tabs.persist_debounce_ms must not be negative")
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.StateDir = expandEnv(cfg.StateDir)
	cfg.Storage.Path = expandEnv(cfg.Storage.Path)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
