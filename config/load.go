package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/veridian/dirschema/errors"
)

// ConfigFileName is the file name searched for in the working directory
// and its ancestors.
const ConfigFileName = "dirschema.yml"

// Load reads the dirschema configuration: defaults, then config files in
// precedence order, then DIRSCHEMA_* environment variables on top.
func Load() (*Config, error) {
	return LoadWithViper(initViper())
}

// LoadWithViper loads configuration from a prepared Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", configPath)
	}
	return LoadWithViper(v)
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("DIRSCHEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	SetDefaults(v)
	mergeConfigFiles(v)
	return v
}

// findProjectConfig searches for dirschema.yml by walking up the
// directory tree. Returns the first config file found, or empty string.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// mergeConfigFiles merges configuration files in precedence order:
// user config < project config < env vars.
func mergeConfigFiles(v *viper.Viper) {
	var configPaths []string

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(homeDir, ".config", "dirschema", ConfigFileName))
	}
	if projectConfig := findProjectConfig(); projectConfig != "" {
		configPaths = append(configPaths, projectConfig)
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}
		fileViper := viper.New()
		fileViper.SetConfigFile(configPath)
		fileViper.SetConfigType("yaml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}
		for key, value := range fileViper.AllSettings() {
			v.Set(key, value)
		}
	}
}
