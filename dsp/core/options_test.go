package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAnalysisOptions(t *testing.T) {
	cfg := ApplyAnalysisOptions(
		WithResolution(4096),
		WithSpectrogramWindow(512),
		WithSpectrogramOverlap(128),
		WithMaxFreq(8000),
	)
	assert.Equal(t, 4096, cfg.Resolution)
	assert.Equal(t, 512, cfg.SpectrogramWindow)
	assert.Equal(t, 128, cfg.Overlap())
	assert.Equal(t, 8000.0, cfg.MaxFreq)
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyAnalysisOptions(WithResolution(0), WithSpectrogramWindow(-1),
		WithSpectrogramOverlap(-5), WithMaxFreq(0), nil)
	assert.Equal(t, DefaultAnalysisConfig(), cfg)
}

func TestOverlapDefaultsToHalfWindow(t *testing.T) {
	cfg := ApplyAnalysisOptions(WithSpectrogramWindow(1000))
	assert.Equal(t, 500, cfg.Overlap())
}
