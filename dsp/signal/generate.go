package signal

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Tone is one sinusoidal component of a multi-tone signal.
type Tone struct {
	FreqHz    float64
	Amplitude float64
}

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for sampleRate.
func NewGenerator(sampleRate float64, opts ...Option) (*Generator, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// SampleRate returns the generator sample rate.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SampleCount converts d to a whole number of samples, rounding to nearest.
func (g *Generator) SampleCount(d time.Duration) int {
	return int(math.Round(d.Seconds() * g.sampleRate))
}

// Sine generates a sine wave starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (Signal, error) {
	return g.MultiTone(samples, Tone{FreqHz: freqHz, Amplitude: amplitude})
}

// MultiTone generates the sum of sine tones, each starting at phase zero.
func (g *Generator) MultiTone(samples int, tones ...Tone) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("%w: %d samples requested", ErrEmptySignal, samples)
	}

	out := make([]float64, samples)
	for _, tone := range tones {
		if tone.FreqHz < 0 || tone.FreqHz > g.sampleRate/2 {
			return Signal{}, fmt.Errorf("signal: tone %g Hz outside [0, %g]", tone.FreqHz, g.sampleRate/2)
		}
		step := 2 * math.Pi * tone.FreqHz / g.sampleRate
		for i := range out {
			out[i] += tone.Amplitude * math.Sin(step*float64(i))
		}
	}
	return Signal{samples: out, sampleRate: g.sampleRate}, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("%w: %d samples requested", ErrEmptySignal, samples)
	}
	if amplitude < 0 {
		return Signal{}, fmt.Errorf("signal: noise amplitude must be >= 0: %g", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return Signal{samples: out, sampleRate: g.sampleRate}, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
// An all-zero input stays zero.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %g", targetPeak)
	}
	if len(data) == 0 {
		return nil, ErrEmptySignal
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// Normalized returns s scaled to targetPeak.
func (s Signal) Normalized(targetPeak float64) (Signal, error) {
	out, err := Normalize(s.samples, targetPeak)
	if err != nil {
		return Signal{}, err
	}
	return Signal{samples: out, sampleRate: s.sampleRate}, nil
}
