// Package config loads client configuration: flags come from an optional
// adminctl.yaml in the working directory or $HOME/.config/adminctl, with
// ADMINCTL_* environment variables overriding everything.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageLimit int           `mapstructure:"page_limit"`
	LogFile   string        `mapstructure:"log_file"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("base_url", "https://laundromat-server.vercel.app/api/v1")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("page_limit", 15)
	v.SetDefault("log_file", "adminctl.log")

	v.SetConfigName("adminctl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/adminctl")

	v.SetEnvPrefix("adminctl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
