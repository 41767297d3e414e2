package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-mpsse/config"
	"github.com/moffa90/go-mpsse/logging"
)

type contextKey int

const (
	configKey contextKey = iota
	loggerKey
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mpssectl",
	Short: "Encode and run MPSSE command scripts",
	Long: `mpssectl compiles MPSSE command scripts into the byte stream an FTDI
engine executes, and runs them against a simulated device.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("log-level") {
			level, _ := cmd.Flags().GetString("log-level")
			if _, ok := logging.ParseLevel(level); !ok {
				return fmt.Errorf("unknown log level %q", level)
			}
			cfg.Log.Level = level
		}
		if cmd.Flags().Changed("log-json") {
			cfg.Log.JSON, _ = cmd.Flags().GetBool("log-json")
		}
		cfg.Log.Out = cmd.ErrOrStderr()

		logger := logging.New("mpssectl", cfg.Log)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = context.WithValue(ctx, configKey, cfg)
		ctx = context.WithValue(ctx, loggerKey, logger)
		cmd.SetContext(ctx)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Settings file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}

func configFrom(cmd *cobra.Command) config.Config {
	if cfg, ok := cmd.Context().Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

func loggerFrom(cmd *cobra.Command) zerolog.Logger {
	if logger, ok := cmd.Context().Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}
