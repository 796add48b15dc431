// Package cmd wires the ddosolve cobra command tree: persistent flags for
// logging/config/tracing, and the solve/print-header subcommands.
//
// Grounded on junjiewwang-perf-analysis/cmd/cli/cmd/root.go's
// PersistentPreRunE pattern (logger constructed from --verbose before any
// subcommand runs) and pkg/config/config.go's viper precedence (flags >
// config file > built-in defaults, environment variables layered on top).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/ddopt/telemetry"
)

var (
	cfgFile   string
	verbose   bool
	traceFlag bool

	logger         telemetry.Logger = telemetry.NullLogger{}
	tracer         oteltrace.Tracer
	tracerShutdown telemetry.ShutdownFunc
)

var rootCmd = &cobra.Command{
	Use:   "ddosolve",
	Short: "Parallel branch-and-bound optimizer over approximate decision diagrams",
	Long: `ddosolve compiles and searches approximate decision diagrams to solve
discrete dynamic-programming models to proof or to a time budget.

The only model wired in by default is tsptw (traveling salesman with time
windows); see the solve subcommand's --file flag.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("ddosolve: read config %s: %w", cfgFile, err)
			}
		}
		viper.SetEnvPrefix("ddosolve")
		viper.AutomaticEnv()

		level := telemetry.LevelInfo
		if verbose {
			level = telemetry.LevelDebug
		}
		logger = telemetry.NewDefaultLogger(level, os.Stdout)

		if traceFlag {
			t, shutdown, err := telemetry.Init("ddosolve", "dev")
			if err != nil {
				return fmt.Errorf("ddosolve: init tracing: %w", err)
			}
			tracer = t
			tracerShutdown = shutdown
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if tracerShutdown != nil {
			return tracerShutdown(cmd.Context())
		}
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML file of flag defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "raise the log level to debug")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "wrap the solve call in an OpenTelemetry span")
}

// GetLogger returns the logger configured by the last PersistentPreRunE.
func GetLogger() telemetry.Logger { return logger }

// GetTracer returns the tracer configured by --trace, or the package-wide
// no-op tracer (otel's default when no provider was ever registered) if
// tracing was never enabled.
func GetTracer() oteltrace.Tracer {
	if tracer == nil {
		return otel.Tracer("ddosolve")
	}
	return tracer
}
