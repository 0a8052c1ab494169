// Package config merges command-line flags, AMENDTREE_* environment
// variables and an optional YAML config file into one Config.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coolbeans/amendtree/pkg/document"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "AMENDTREE"

// Config holds the settings shared by the parse and serve commands.
type Config struct {
	Verbose  bool   `mapstructure:"verbose"`
	Quiet    bool   `mapstructure:"quiet"`
	Format   string `mapstructure:"format"`
	Articles []int  `mapstructure:"article"`
	Listen   string `mapstructure:"listen"`
}

// Load resolves the configuration. Precedence, highest first: flags set on
// the command line, environment, config file, defaults. flags may be nil
// and configFile may be empty.
func Load(flags *pflag.FlagSet, configFile string) (Config, error) {
	settings := viper.New()
	settings.SetDefault("verbose", false)
	settings.SetDefault("quiet", false)
	settings.SetDefault("format", string(document.FormatJSON))
	settings.SetDefault("article", []int{})
	settings.SetDefault("listen", ":8080")

	settings.SetEnvPrefix(EnvPrefix)
	settings.AutomaticEnv()

	if configFile != "" {
		settings.SetConfigFile(configFile)
		if readErr := settings.ReadInConfig(); readErr != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", configFile, readErr)
		}
	}

	if flags != nil {
		if bindErr := settings.BindPFlags(flags); bindErr != nil {
			return Config{}, fmt.Errorf("binding flags: %w", bindErr)
		}
	}

	var loaded Config
	if unmarshalErr := settings.Unmarshal(&loaded); unmarshalErr != nil {
		return Config{}, fmt.Errorf("decoding config: %w", unmarshalErr)
	}
	if _, formatErr := document.ParseFormat(loaded.Format); formatErr != nil {
		return Config{}, formatErr
	}
	return loaded, nil
}

// OutputFormat returns the validated output format.
func (loaded Config) OutputFormat() document.Format {
	format, _ := document.ParseFormat(loaded.Format)
	return format
}
