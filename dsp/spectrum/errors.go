package spectrum

import "errors"

// Errors returned by the analyzers.
var (
	ErrEmptyInput        = errors.New("spectrum: empty input")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive")
	ErrLengthMismatch    = errors.New("spectrum: length mismatch")
	ErrInvalidResolution = errors.New("spectrum: resolution must be positive")
	ErrInvalidFrequency  = errors.New("spectrum: frequency must lie between 0 and the Nyquist frequency")
)
