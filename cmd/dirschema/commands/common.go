// Package commands implements the dirschema CLI subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/veridian/dirschema/config"
	"github.com/veridian/dirschema/schema"
)

// newParser builds a schema parser from the loaded configuration with
// command-line flags taking precedence.
func newParser(cmd *cobra.Command) (*schema.Parser, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dir := cfg.Schema.Dir
	if flagDir, _ := cmd.Flags().GetString("dir"); flagDir != "" {
		dir = flagDir
	}
	ext := cfg.Schema.Extension
	if flagExt, _ := cmd.Flags().GetString("ext"); flagExt != "" {
		ext = flagExt
	}

	var opts []schema.Option
	if dir != "" {
		opts = append(opts, schema.WithDirectory(dir), schema.WithExtension(ext))
	}
	return schema.New(opts...), nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
