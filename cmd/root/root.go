// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/spend-rollup/internal/config"
	"fjacquet/spend-rollup/internal/container"
	"fjacquet/spend-rollup/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Source     string
	SourcePath string
	Format     string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the dependencies built for the running command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spend-rollup",
		Short: "A CLI tool to roll up personal transactions into spending summaries.",
		Long: `spend-rollup aggregates a user's transactions into daily, weekly, monthly and
yearly spent/earned series, current-period totals, historical averages and a
per-category breakdown of the current month.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if loaded, err := config.LoadEnv(); err != nil {
				Log.WithError(err).Warn("Failed to load .env file")
			} else if loaded != "" {
				Log.Debug("Loaded environment variables", logging.Field{Key: logging.FieldInputFile, Value: loaded})
			}

			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}

			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			AppContainer = c
			Log = c.GetLogger()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Shutdown()
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches ./config.yaml, .spend-rollup/ and $HOME/.spend-rollup/)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	flags.StringVar(&SharedFlags.Source, "source", "", "Transaction source (csv, yaml or sqlite)")
	flags.StringVar(&SharedFlags.SourcePath, "source-path", "", "CSV directory, YAML file or SQLite database")
	flags.StringVarP(&SharedFlags.Format, "format", "f", "", "Output format (json or yaml)")
}

// LoadConfig reads the configuration and applies the flags that were set.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.InitializeConfigFrom(SharedFlags.ConfigFile)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag  string
		value string
		dest  *string
	}{
		{"log-level", SharedFlags.LogLevel, &cfg.Log.Level},
		{"log-format", SharedFlags.LogFormat, &cfg.Log.Format},
		{"source", SharedFlags.Source, &cfg.Source.Type},
		{"source-path", SharedFlags.SourcePath, &cfg.Source.Path},
		{"format", SharedFlags.Format, &cfg.Output.Format},
	}
	for _, o := range overrides {
		if f := cmd.Flags().Lookup(o.flag); f != nil && f.Changed {
			*o.dest = o.value
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Shutdown releases the container's resources. Cobra skips post-run hooks when a
// command fails, so callers of Execute must call it as well. It is safe to call
// more than once.
func Shutdown() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close resources")
	}
	AppContainer = nil
}

// GetContainer returns the container built for the running command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}
