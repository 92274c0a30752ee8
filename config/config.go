// Package config loads the dirschema client configuration via Viper.
//
// Configuration is read from dirschema.yml (found by walking up from the
// working directory, or under ~/.config/dirschema/), with environment
// variables under the DIRSCHEMA prefix taking precedence.
package config

import (
	"fmt"

	"github.com/veridian/dirschema/errors"
)

// Config is the dirschema client configuration
type Config struct {
	Schema SchemaConfig `mapstructure:"schema"`
	Log    LogConfig    `mapstructure:"log"`
}

// SchemaConfig configures where schema documents are looked up
type SchemaConfig struct {
	Dir       string `mapstructure:"dir"`       // Schema directory; empty = built-in documents only
	Extension string `mapstructure:"extension"` // Document file extension (default: ".yml")
}

// LogConfig configures CLI logging output
type LogConfig struct {
	JSON      bool `mapstructure:"json"`      // JSON lines instead of console output
	Verbosity int  `mapstructure:"verbosity"` // 0 = warnings, 1 = info, 2 = debug
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Schema.Extension != "" && c.Schema.Extension[0] != '.' {
		return errors.Newf("schema.extension must start with a dot, got %q", c.Schema.Extension)
	}
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Schema: {Dir: %s, Extension: %s}, Log: {JSON: %t, Verbosity: %d}}",
		c.Schema.Dir, c.Schema.Extension, c.Log.JSON, c.Log.Verbosity)
}
