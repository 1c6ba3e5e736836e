package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"dailyfocus/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	Database  string            `mapstructure:"database"`
	ExportDir string            `mapstructure:"export_dir"`
	KeyMap    map[string]string `mapstructure:"keymap"`
}

// Load reads the configuration, creating a default config file on first
// run. An explicit configPath overrides the default location.
func Load(configPath string) (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "dailyfocus")

	config := Config{
		Database:  filepath.Join(configDir, "dailyfocus.db"),
		ExportDir: homeDir,
		KeyMap:    keymaps.GetDefaultKeyMappings(),
	}

	v := viper.New()
	v.SetConfigType("json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return config, err
			}
		}
		// Config file not found, create default config
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return config, err
		}
		v.Set("database", config.Database)
		v.Set("export_dir", config.ExportDir)
		v.Set("keymap", config.KeyMap)
		if err := v.WriteConfigAs(filepath.Join(configDir, "config.json")); err != nil {
			return config, err
		}
		return config, nil
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, err
	}

	// Partial config files keep defaults for whatever they leave out
	if config.Database == "" {
		config.Database = filepath.Join(configDir, "dailyfocus.db")
	}
	if config.ExportDir == "" {
		config.ExportDir = homeDir
	}
	if config.KeyMap == nil {
		config.KeyMap = keymaps.GetDefaultKeyMappings()
	}

	return config, nil
}
