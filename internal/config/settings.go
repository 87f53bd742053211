package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Settings are the application-level options shared by all commands.
// They come from flags, ORBITSIM_* environment variables and an optional
// orbitsim.yaml, in that order of precedence.
type Settings struct {
	DataDir   string `mapstructure:"data_dir"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func DefaultSettings() Settings {
	return Settings{
		DataDir:   ".orbitsim",
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// NewViper returns a viper instance with defaults and environment binding
// set up. file may be empty to search the working directory and
// $HOME/.orbitsim for orbitsim.yaml.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	d := DefaultSettings()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("orbitsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.orbitsim")
	}

	v.SetEnvPrefix("ORBITSIM")
	v.AutomaticEnv()
	return v
}

// LoadSettings reads the config file if there is one and unmarshals the
// merged settings. A missing file in the search path is not an error.
func LoadSettings(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return Settings{}, fmt.Errorf("unknown log format %q", s.LogFormat)
	}
	return s, nil
}
