// Package frequency computes shape descriptors of one-sided magnitude
// spectra: peak, centroid, spread, flatness, rolloff and -3 dB bandwidth.
//
// Spectra are given as paired frequency and linear magnitude slices, so any
// DFT length and bin spacing is accepted. [OneSided] extracts the
// non-negative half of an FFT-ordered spectrum.
package frequency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-firlab/dsp/core"
)

// DefaultRolloff is the energy fraction used by Calculate for Rolloff.
const DefaultRolloff = 0.85

// Errors returned by Calculate.
var (
	ErrEmptySpectrum  = errors.New("frequency: empty spectrum")
	ErrLengthMismatch = errors.New("frequency: frequency and magnitude lengths differ")
)

// Stats holds frequency-domain statistics of a magnitude spectrum.
type Stats struct {
	BinCount int     `json:"bin_count"`
	PeakHz   float64 `json:"peak_hz"`
	PeakDB   float64 `json:"peak_db"`
	Energy   float64 `json:"energy"` // sum of squared magnitudes
	// Spectral shape descriptors
	Centroid  float64 `json:"centroid_hz"`  // magnitude-weighted mean frequency
	Spread    float64 `json:"spread_hz"`    // weighted standard deviation around the centroid
	Flatness  float64 `json:"flatness"`     // Wiener entropy, 0..1, DC excluded
	Rolloff   float64 `json:"rolloff_hz"`   // frequency below which 85% of the energy lies
	Bandwidth float64 `json:"bandwidth_hz"` // -3 dB width around the peak
}

// OneSided returns the non-negative half of an FFT-ordered spectrum: bins
// 0..(N-1)/2.
func OneSided(freqs, magnitude []float64) (f, m []float64) {
	end := (len(freqs)-1)/2 + 1
	end = min(end, len(magnitude))
	if end <= 0 {
		return nil, nil
	}
	return freqs[:end], magnitude[:end]
}

// Calculate computes all statistics of the spectrum. freqs must be
// increasing and magnitude linear (not dB).
func Calculate(freqs, magnitude []float64) (Stats, error) {
	if len(magnitude) == 0 {
		return Stats{}, ErrEmptySpectrum
	}
	if len(freqs) != len(magnitude) {
		return Stats{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(freqs), len(magnitude))
	}

	peak := floats.MaxIdx(magnitude)
	s := Stats{
		BinCount: len(magnitude),
		PeakHz:   freqs[peak],
		PeakDB:   core.AmplitudeToDB(magnitude[peak]),
		Energy:   floats.Dot(magnitude, magnitude),
	}
	if floats.Sum(magnitude) == 0 {
		return s, nil
	}

	s.Centroid, s.Spread = centroidSpread(freqs, magnitude)
	s.Flatness = Flatness(freqs, magnitude)
	s.Rolloff = Rolloff(freqs, magnitude, DefaultRolloff)
	s.Bandwidth = Bandwidth(freqs, magnitude)
	return s, nil
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(freqs, magnitude []float64) float64 {
	c, _ := centroidSpread(freqs, magnitude)
	return c
}

func centroidSpread(freqs, magnitude []float64) (centroid, spread float64) {
	if len(magnitude) == 0 || floats.Sum(magnitude) == 0 {
		return 0, 0
	}
	mean, variance := stat.PopMeanVariance(freqs, magnitude)
	return mean, math.Sqrt(math.Max(variance, 0))
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1:
// the geometric over the arithmetic mean of the magnitudes. Bins at 0 Hz are
// excluded. Any zero bin makes the result zero.
func Flatness(freqs, magnitude []float64) float64 {
	var values []float64
	for i, v := range magnitude {
		if freqs[i] == 0 {
			continue
		}
		if v <= 0 {
			return 0
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0
	}
	return stat.GeometricMean(values, nil) / stat.Mean(values, nil)
}

// Rolloff returns the frequency below which the given fraction (0..1) of
// the spectral energy lies.
func Rolloff(freqs, magnitude []float64, fraction float64) float64 {
	if len(magnitude) == 0 {
		return 0
	}
	energy := make([]float64, len(magnitude))
	floats.MulTo(energy, magnitude, magnitude)
	floats.CumSum(energy, energy)

	total := energy[len(energy)-1]
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	for i, e := range energy {
		if e >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// Bandwidth returns the -3 dB bandwidth around the spectral peak in Hz.
//
// The -3 dB points (where magnitude drops to peak/sqrt(2)) are located on
// both sides of the peak with linear interpolation between bins. A side that
// never drops below the threshold extends to the edge of the spectrum.
func Bandwidth(freqs, magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peakBin := floats.MaxIdx(magnitude)
	peakVal := magnitude[peakBin]
	if peakVal == 0 {
		return 0
	}
	threshold := peakVal / math.Sqrt2

	lower := freqs[0]
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interpFreq(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interpFreq(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

// interpFreq linearly interpolates the frequency where the magnitude crosses
// threshold between two bins.
func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}
