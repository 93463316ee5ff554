// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/spend-rollup/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Source backends.
const (
	SourceCSV    = "csv"
	SourceYAML   = "yaml"
	SourceSQLite = "sqlite"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// EnvPrefix prefixes every environment override, e.g. ROLLUP_LOG_LEVEL.
const EnvPrefix = "ROLLUP"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Source struct {
		Type string `mapstructure:"type" yaml:"type"`
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"source" yaml:"source"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Engine struct {
		Timezone string `mapstructure:"timezone" yaml:"timezone"`
	} `mapstructure:"engine" yaml:"engine"`

	Cache struct {
		TTLSeconds int `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
	} `mapstructure:"cache" yaml:"cache"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
// from the standard locations.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFrom("")
}

// InitializeConfigFrom loads configuration like InitializeConfig, reading
// configFile instead of searching when it is not empty.
func InitializeConfigFrom(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spend-rollup")
		v.AddConfigPath(".spend-rollup")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("source.type", SourceCSV)
	v.SetDefault("source.path", "data")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("engine.timezone", "UTC")

	v.SetDefault("cache.ttl_seconds", 0)

	v.SetDefault("output.format", FormatJSON)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Source.Type {
	case SourceCSV, SourceYAML, SourceSQLite:
	default:
		return fmt.Errorf("invalid source type: %s (must be 'csv', 'yaml' or 'sqlite')", config.Source.Type)
	}
	if config.Source.Path == "" {
		return fmt.Errorf("source.path must not be empty")
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if _, err := time.LoadLocation(config.Engine.Timezone); err != nil {
		return fmt.Errorf("invalid engine.timezone %q: %w", config.Engine.Timezone, err)
	}

	if config.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must not be negative, got: %d", config.Cache.TTLSeconds)
	}

	if err := validation.IsValidOutputFormat(config.Output.Format); err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	return nil
}

// Location returns the time zone periods are computed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CacheTTL returns the snapshot cache lifetime; zero disables caching.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	for _, r := range c.CSV.Delimiter {
		return r
	}
	return ','
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Validate checks the configuration after programmatic overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}
