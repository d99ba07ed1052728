// Package core holds numeric helpers and shared configuration used across
// the DSP packages.
package core

import "math"

// Epsilon is added to magnitudes and powers before taking logarithms so that
// exact zeros map to a finite floor (-200 dB for amplitudes, -100 dB for
// powers) instead of -Inf.
const Epsilon = 1e-10

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// AmplitudeToDB converts a non-negative magnitude to dB as 20*log10(m+Epsilon).
func AmplitudeToDB(m float64) float64 {
	return 20 * math.Log10(m+Epsilon)
}

// PowerToDB converts a non-negative power to dB as 10*log10(p+Epsilon).
func PowerToDB(p float64) float64 {
	return 10 * math.Log10(p+Epsilon)
}

// AmplitudeToDBInto writes AmplitudeToDB(src[i]) into dst[i] and returns dst.
// dst is allocated when it is too short.
func AmplitudeToDBInto(dst, src []float64) []float64 {
	dst = ensureLen(dst, len(src))
	for i, m := range src {
		dst[i] = AmplitudeToDB(m)
	}
	return dst
}

// PowerToDBInto writes PowerToDB(src[i]) into dst[i] and returns dst.
func PowerToDBInto(dst, src []float64) []float64 {
	dst = ensureLen(dst, len(src))
	for i, p := range src {
		dst[i] = PowerToDB(p)
	}
	return dst
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// DBPowerToLinear converts dB to linear power (10*log10 convention).
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

func ensureLen(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}
