package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/flaneur2020/pngme/pngme/logger"
)

// EnvPrefix prefixes environment overrides, e.g. PNGME_LOG_LEVEL.
const EnvPrefix = "PNGME"

// Config holds settings shared by all subcommands.
type Config struct {
	LogLevel   string `mapstructure:"log_level"`
	NoProgress bool   `mapstructure:"no_progress"`
	Backup     bool   `mapstructure:"backup"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"no-progress": "no_progress",
	"backup":      "backup",
}

// Load resolves configuration from, in increasing priority: defaults, the
// optional YAML file at path, PNGME_* environment variables and flags that
// were set explicitly.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "error")
	v.SetDefault("no_progress", false)
	v.SetDefault("backup", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (logger.LogLevel, error) {
	return logger.ParseLogLevel(c.LogLevel)
}
