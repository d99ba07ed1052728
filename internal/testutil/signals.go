package testutil

import (
	"math"
	"math/rand"
)

// Tone is one sinusoidal component of a test signal.
type Tone struct {
	FreqHz    float64
	Amplitude float64
}

// MultiTone sums sine components sampled at sampleRate.
func MultiTone(sampleRate float64, length int, tones ...Tone) []float64 {
	out := make([]float64, length)
	for _, tone := range tones {
		step := 2 * math.Pi * tone.FreqHz / sampleRate
		for i := range out {
			out[i] += tone.Amplitude * math.Sin(step*float64(i))
		}
	}
	return out
}

// Noise generates white noise in [-amplitude, amplitude] from a fixed seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ramp returns 1, 2, ..., n.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// NaiveSameConvolution is the reference "same" convolution: the full linear
// convolution cropped to len(x) samples starting at (len(h)-1)/2.
func NaiveSameConvolution(x, h []float64) []float64 {
	full := make([]float64, len(x)+len(h)-1)
	for i, xv := range x {
		for j, hv := range h {
			full[i+j] += xv * hv
		}
	}
	start := (len(h) - 1) / 2
	return append([]float64(nil), full[start:start+len(x)]...)
}
