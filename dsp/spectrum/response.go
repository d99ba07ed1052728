package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/internal/dft"
)

// DefaultResolution is the DFT length used for filter responses when the
// caller has no preference.
const DefaultResolution = 2048

// FrequencyResponse is the magnitude response of a set of FIR coefficients
// sampled on a DFT grid, in FFT bin order.
type FrequencyResponse struct {
	Frequencies []float64
	MagnitudeDB []float64
}

// Len returns the number of bins.
func (r FrequencyResponse) Len() int { return len(r.Frequencies) }

// At returns the response in dB at freqHz by linear interpolation between
// the non-negative bins. Frequencies beyond the last bin are clamped.
func (r FrequencyResponse) At(freqHz float64) float64 {
	if r.Len() == 0 {
		return math.NaN()
	}
	end := (r.Len()-1)/2 + 1
	out, err := InterpolateLinear(r.Frequencies[:end], r.MagnitudeDB[:end], []float64{freqHz})
	if err != nil {
		return math.NaN()
	}
	return out[0]
}

// Positive returns the display view of the response, see Spectrum.Positive.
func (r FrequencyResponse) Positive(maxHz float64) (freqs, magDB []float64) {
	lo, hi := positiveRange(r.Frequencies, maxHz)
	return clone(r.Frequencies[lo:hi]), clone(r.MagnitudeDB[lo:hi])
}

// FilterResponse computes the magnitude response of h on a grid of
// resolution DFT bins. h is zero-padded or truncated to resolution samples,
// so resolution only controls the display grid.
func FilterResponse(h []float64, sampleRate float64, resolution int) (FrequencyResponse, error) {
	if len(h) == 0 {
		return FrequencyResponse{}, ErrEmptyInput
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return FrequencyResponse{}, err
	}
	if resolution <= 0 {
		return FrequencyResponse{}, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}

	bins, err := dft.Real(h, resolution)
	if err != nil {
		return FrequencyResponse{}, fmt.Errorf("spectrum: %w", err)
	}

	return FrequencyResponse{
		Frequencies: FFTFrequencies(resolution, sampleRate),
		MagnitudeDB: core.AmplitudeToDBInto(nil, Magnitude(bins)),
	}, nil
}

// ResponseAt evaluates the DTFT of h at freqHz:
//
//	H(f) = sum_k h[k] * exp(-j*2*pi*f/fs*k)
func ResponseAt(h []float64, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var sum complex128
	for k, c := range h {
		sum += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return sum
}

// MagnitudeAt returns the exact magnitude response of h at freqHz in dB,
// independent of any DFT grid.
func MagnitudeAt(h []float64, freqHz, sampleRate float64) float64 {
	return core.AmplitudeToDB(cmplx.Abs(ResponseAt(h, freqHz, sampleRate)))
}
