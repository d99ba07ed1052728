// Package signal defines the immutable sampled signal passed between the
// filter lab stages and deterministic generators for test and demo input.
package signal

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Errors returned when constructing signals.
var (
	ErrInvalidSampleRate = errors.New("signal: sample rate must be positive")
	ErrEmptySignal       = errors.New("signal: no samples")
)

// Signal is a sequence of real samples at a fixed sample rate. A Signal never
// exposes its backing array, so it cannot be modified after construction.
type Signal struct {
	samples    []float64
	sampleRate float64
}

// New copies samples into a Signal.
func New(samples []float64, sampleRate float64) (Signal, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Signal{}, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}
	if len(samples) == 0 {
		return Signal{}, ErrEmptySignal
	}

	return Signal{
		samples:    append([]float64(nil), samples...),
		sampleRate: sampleRate,
	}, nil
}

// Samples returns a copy of the samples.
func (s Signal) Samples() []float64 {
	return append([]float64(nil), s.samples...)
}

// At returns sample i.
func (s Signal) At(i int) float64 { return s.samples[i] }

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.samples) }

// SampleRate returns the sample rate in Hz.
func (s Signal) SampleRate() float64 { return s.sampleRate }

// Duration returns the signal length in time.
func (s Signal) Duration() time.Duration {
	if s.sampleRate == 0 {
		return 0
	}
	return time.Duration(math.Round(float64(len(s.samples)) / s.sampleRate * float64(time.Second)))
}

// Derive builds a new signal at the same sample rate, typically from the
// output of a transform of s.
func (s Signal) Derive(samples []float64) (Signal, error) {
	return New(samples, s.sampleRate)
}

// Peak returns the largest absolute sample value.
func (s Signal) Peak() float64 {
	peak := 0.0
	for _, v := range s.samples {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// RMS returns the root mean square of the samples.
func (s Signal) RMS() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s.samples)))
}
