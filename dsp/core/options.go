package core

// AnalysisConfig holds the settings shared by the spectral diagnostics.
type AnalysisConfig struct {
	// Resolution is the DFT length used for filter frequency responses.
	Resolution int
	// SpectrogramWindow is the STFT segment length in samples.
	SpectrogramWindow int
	// SpectrogramOverlap is the number of samples shared by adjacent
	// segments. Zero selects SpectrogramWindow/2.
	SpectrogramOverlap int
	// MaxFreq bounds the display-oriented report views, in Hz.
	MaxFreq float64
}

// AnalysisOption mutates an AnalysisConfig.
type AnalysisOption func(*AnalysisConfig)

// DefaultAnalysisConfig returns the defaults of the original lab.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Resolution:        2048,
		SpectrogramWindow: 2048,
		MaxFreq:           10000,
	}
}

// WithResolution sets the filter response resolution.
func WithResolution(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.Resolution = n
		}
	}
}

// WithSpectrogramWindow sets the STFT segment length.
func WithSpectrogramWindow(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.SpectrogramWindow = n
		}
	}
}

// WithSpectrogramOverlap sets the STFT overlap. Negative values are ignored.
func WithSpectrogramOverlap(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n >= 0 {
			cfg.SpectrogramOverlap = n
		}
	}
}

// WithMaxFreq sets the display limit.
func WithMaxFreq(hz float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if hz > 0 {
			cfg.MaxFreq = hz
		}
	}
}

// ApplyAnalysisOptions applies zero or more options to the default config.
func ApplyAnalysisOptions(opts ...AnalysisOption) AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Overlap returns the effective spectrogram overlap.
func (c AnalysisConfig) Overlap() int {
	if c.SpectrogramOverlap == 0 {
		return c.SpectrogramWindow / 2
	}
	return c.SpectrogramOverlap
}
