// Package time computes level statistics of time-domain signals: DC, RMS,
// peak, crest factor, energy, zero crossings and higher moments.
//
// Level values in dB use the epsilon floor of the core package, so a silent
// signal reports a large negative finite level instead of -Inf.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-firlab/dsp/core"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int     `json:"length"`
	DC            float64 `json:"dc"` // mean
	RMS           float64 `json:"rms"`
	RMSDB         float64 `json:"rms_db"`
	Peak          float64 `json:"peak"` // max(|max|, |min|)
	PeakDB        float64 `json:"peak_db"`
	Max           float64 `json:"max"`
	MaxPos        int     `json:"max_pos"`
	Min           float64 `json:"min"`
	MinPos        int     `json:"min_pos"`
	CrestFactor   float64 `json:"crest_factor"` // peak / RMS, 0 for silence
	CrestFactorDB float64 `json:"crest_factor_db"`
	Energy        float64 `json:"energy"` // sum of squares
	ZeroCrossings int     `json:"zero_crossings"`
	// Population variance; sample skewness and excess kurtosis.
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// Calculate computes all statistics of signal. An empty signal yields the
// zero Stats with dB fields at the floor.
func Calculate(signal []float64) Stats {
	if len(signal) == 0 {
		floor := core.AmplitudeToDB(0)
		return Stats{RMSDB: floor, PeakDB: floor, CrestFactorDB: floor}
	}

	n := float64(len(signal))
	maxPos, minPos := floats.MaxIdx(signal), floats.MinIdx(signal)
	energy := floats.Dot(signal, signal)
	rms := math.Sqrt(energy / n)
	peak := math.Max(math.Abs(signal[maxPos]), math.Abs(signal[minPos]))
	mean, variance := stat.PopMeanVariance(signal, nil)

	s := Stats{
		Length:        len(signal),
		DC:            mean,
		RMS:           rms,
		RMSDB:         core.AmplitudeToDB(rms),
		Peak:          peak,
		PeakDB:        core.AmplitudeToDB(peak),
		Max:           signal[maxPos],
		MaxPos:        maxPos,
		Min:           signal[minPos],
		MinPos:        minPos,
		Energy:        energy,
		ZeroCrossings: ZeroCrossings(signal),
		Variance:      variance,
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
	}
	s.CrestFactorDB = core.AmplitudeToDB(s.CrestFactor)

	// Sample skewness and kurtosis need at least four distinct-valued samples.
	if variance > 0 && len(signal) >= 4 {
		s.Skewness = stat.Skew(signal, nil)
		s.Kurtosis = stat.ExKurtosis(signal, nil)
	}
	return s
}

// RMS returns the root-mean-square of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// DC returns the mean of signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return stat.Mean(signal, nil)
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Max(math.Abs(floats.Max(signal)), math.Abs(floats.Min(signal)))
}

// CrestFactor returns peak over RMS, or 0 for silence.
func CrestFactor(signal []float64) float64 {
	rms := RMS(signal)
	if rms == 0 {
		return 0
	}
	return Peak(signal) / rms
}

// ZeroCrossings counts sign changes between adjacent samples. Samples that
// are exactly zero do not cross.
func ZeroCrossings(signal []float64) int {
	count := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}
	return count
}
