package fir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-firlab/dsp/window"
)

// Errors returned by the designers.
var (
	ErrInvalidCutoff     = errors.New("fir: cutoff must lie strictly between 0 and the Nyquist frequency")
	ErrInvalidBand       = errors.New("fir: low cutoff must be below high cutoff")
	ErrInvalidSampleRate = errors.New("fir: sample rate must be positive")
	ErrInvalidTaps       = errors.New("fir: tap count must be positive")
	ErrUnsupportedKind   = errors.New("fir: unsupported filter kind")

	// ErrUnsupportedWindow wraps window.ErrUnsupportedKind so callers can test
	// for either.
	ErrUnsupportedWindow = fmt.Errorf("fir: %w", window.ErrUnsupportedKind)
)
