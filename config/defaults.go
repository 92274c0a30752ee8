package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Schema lookup defaults. An empty dir serves the built-in
	// document set directly.
	v.SetDefault("schema.dir", "")
	v.SetDefault("schema.extension", ".yml")

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// BindEnvVars explicitly binds configuration to environment variables
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("schema.dir", "DIRSCHEMA_SCHEMA_DIR")
	v.BindEnv("schema.extension", "DIRSCHEMA_SCHEMA_EXTENSION")
	v.BindEnv("log.json", "DIRSCHEMA_LOG_JSON")
}
