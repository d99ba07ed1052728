// Package config loads firlab settings from flags, environment and an
// optional firlab.yaml through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/dsp/filter/fir"
	"github.com/cwbudde/algo-firlab/dsp/window"
	"github.com/cwbudde/algo-firlab/internal/logging"
)

const (
	// Name is the config file base name and the env prefix stem.
	Name = "firlab"
	// EnvPrefix prefixes every environment override, e.g. FIRLAB_FILTER_CUTOFF.
	EnvPrefix = "FIRLAB"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of firlab settings.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Filter   FilterConfig   `mapstructure:"filter"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
}

// FilterConfig describes the FIR filter to design. Cutoff is the single
// cutoff for lowpass/highpass and the low edge for bandpass.
type FilterConfig struct {
	Kind       string  `mapstructure:"kind"`
	Cutoff     float64 `mapstructure:"cutoff"`
	CutoffHigh float64 `mapstructure:"cutoff_high"`
	Taps       int     `mapstructure:"taps"`
	Window     string  `mapstructure:"window"`
}

// AnalysisConfig controls the spectral diagnostics.
type AnalysisConfig struct {
	Resolution         int     `mapstructure:"resolution"`
	SpectrogramWindow  int     `mapstructure:"spectrogram_window"`
	SpectrogramOverlap int     `mapstructure:"spectrogram_overlap"`
	MaxFreq            float64 `mapstructure:"max_freq"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Report bool   `mapstructure:"report"`
}

// New returns a viper instance searching for firlab.yaml in the working
// directory and $HOME/.config/firlab, or reading configFile when set.
func New(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// SetDefaults registers every key with its default value. Registering all
// keys is what lets AutomaticEnv overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", logging.FormatConsole)

	v.SetDefault("filter.kind", fir.KindLowpass.String())
	v.SetDefault("filter.cutoff", 1000.0)
	v.SetDefault("filter.cutoff_high", 3000.0)
	v.SetDefault("filter.taps", fir.DefaultTaps)
	v.SetDefault("filter.window", fir.DefaultWindow.String())

	defaults := core.DefaultAnalysisConfig()
	v.SetDefault("analysis.resolution", defaults.Resolution)
	v.SetDefault("analysis.spectrogram_window", defaults.SpectrogramWindow)
	v.SetDefault("analysis.spectrogram_overlap", defaults.SpectrogramOverlap)
	v.SetDefault("analysis.max_freq", defaults.MaxFreq)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.report", false)
}

// Load reads the config file if one is found, decodes all settings and
// validates them. A missing file in the search path is not an error; a
// missing explicit file is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that do not depend on the input signal.
// Cutoffs against Nyquist are checked later by the filter designer.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	kind, err := fir.ParseKind(c.Filter.Kind)
	if err != nil {
		return fmt.Errorf("%w: filter.kind: %v", ErrInvalidConfig, err)
	}
	if _, err := window.ParseKind(c.Filter.Window); err != nil {
		return fmt.Errorf("%w: filter.window: %v", ErrInvalidConfig, err)
	}
	if c.Filter.Cutoff <= 0 {
		return fmt.Errorf("%w: filter.cutoff must be positive", ErrInvalidConfig)
	}
	if kind == fir.KindBandpass && c.Filter.CutoffHigh <= c.Filter.Cutoff {
		return fmt.Errorf("%w: filter.cutoff_high must exceed filter.cutoff", ErrInvalidConfig)
	}
	if c.Filter.Taps < 1 {
		return fmt.Errorf("%w: filter.taps must be at least 1", ErrInvalidConfig)
	}

	if c.Analysis.Resolution < 1 {
		return fmt.Errorf("%w: analysis.resolution must be at least 1", ErrInvalidConfig)
	}
	if c.Analysis.SpectrogramWindow < 1 {
		return fmt.Errorf("%w: analysis.spectrogram_window must be at least 1", ErrInvalidConfig)
	}
	if c.Analysis.SpectrogramOverlap < 0 || c.Analysis.SpectrogramOverlap >= c.Analysis.SpectrogramWindow {
		return fmt.Errorf("%w: analysis.spectrogram_overlap must be in [0, spectrogram_window)", ErrInvalidConfig)
	}
	if c.Analysis.MaxFreq <= 0 {
		return fmt.Errorf("%w: analysis.max_freq must be positive", ErrInvalidConfig)
	}
	return nil
}

// FilterSpec converts the filter settings into a designer spec for a signal
// sampled at sampleRate.
func (c *Config) FilterSpec(sampleRate float64) (fir.Spec, error) {
	kind, err := fir.ParseKind(c.Filter.Kind)
	if err != nil {
		return fir.Spec{}, err
	}
	win, err := window.ParseKind(c.Filter.Window)
	if err != nil {
		return fir.Spec{}, err
	}
	return fir.Spec{
		Kind:       kind,
		Cutoff:     c.Filter.Cutoff,
		CutoffHigh: c.Filter.CutoffHigh,
		SampleRate: sampleRate,
		Taps:       c.Filter.Taps,
		Window:     win,
	}, nil
}

// AnalysisOptions returns the analysis settings as core options.
func (c *Config) AnalysisOptions() []core.AnalysisOption {
	return []core.AnalysisOption{
		core.WithResolution(c.Analysis.Resolution),
		core.WithSpectrogramWindow(c.Analysis.SpectrogramWindow),
		core.WithSpectrogramOverlap(c.Analysis.SpectrogramOverlap),
		core.WithMaxFreq(c.Analysis.MaxFreq),
	}
}

// AnalysisConfig resolves AnalysisOptions against the defaults.
func (c *Config) AnalysisConfig() core.AnalysisConfig {
	return core.ApplyAnalysisOptions(c.AnalysisOptions()...)
}
