package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-firlab/internal/config"
	"github.com/cwbudde/algo-firlab/internal/logging"
)

// app carries the state resolved before a subcommand runs.
type app struct {
	configFile string

	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":           "log_level",
	"log-format":          "log_format",
	"kind":                "filter.kind",
	"cutoff":              "filter.cutoff",
	"cutoff-high":         "filter.cutoff_high",
	"taps":                "filter.taps",
	"window":              "filter.window",
	"resolution":          "analysis.resolution",
	"spectrogram-window":  "analysis.spectrogram_window",
	"spectrogram-overlap": "analysis.spectrogram_overlap",
	"max-freq":            "analysis.max_freq",
	"out-dir":             "output.dir",
	"report":              "output.report",
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "firlab",
		Short: "Windowed-sinc FIR filter lab",
		Long: `firlab designs lowpass, highpass and bandpass FIR filters with the
windowed-sinc method, applies them to audio by same-length convolution and
compares the result with the original through magnitude spectra, the filter
frequency response and spectrograms.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "",
		"config file (default is ./firlab.yaml or $HOME/.config/firlab/firlab.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", logging.FormatConsole, "log format (console, json)")

	rootCmd.AddCommand(
		newDesignCmd(a),
		newApplyCmd(a),
		newAnalyzeCmd(a),
		newDemoCmd(a),
		newWindowsCmd(a),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// initialize loads configuration with the flags of the executing command
// bound on top, then builds the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	a.v = config.New(a.configFile)
	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger.Named("firlab")
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// bindFlags binds every known flag of cmd to its configuration key, so a
// flag given on the command line wins over env and file values.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})
	return lastErr
}
