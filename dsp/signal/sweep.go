package signal

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSweep is returned for sweep bounds outside (0, fs/2] or not
// strictly increasing.
var ErrInvalidSweep = errors.New("signal: invalid sweep range")

// LogSweep generates an exponential sine sweep from startHz to endHz over
// samples samples. Each octave takes the same time, so a filtered sweep
// traces the filter's magnitude response in a spectrogram.
//
// The instantaneous frequency is f(t) = f1 * exp(t/T * ln(f2/f1)), giving
//
//	x(t) = A * sin(2*pi*f1*T/ln(f2/f1) * (exp(t/T*ln(f2/f1)) - 1))
func (g *Generator) LogSweep(startHz, endHz, amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("%w: %d samples requested", ErrEmptySignal, samples)
	}
	if startHz <= 0 || endHz <= startHz || endHz > g.sampleRate/2 {
		return Signal{}, fmt.Errorf("%w: %g..%g Hz at %g Hz", ErrInvalidSweep, startHz, endHz, g.sampleRate)
	}

	duration := float64(samples) / g.sampleRate
	lnRatio := math.Log(endHz / startHz)
	k := 2 * math.Pi * startHz * duration / lnRatio

	out := make([]float64, samples)
	for i := range out {
		t := float64(i) / g.sampleRate
		out[i] = amplitude * math.Sin(k*(math.Exp(t/duration*lnRatio)-1))
	}
	return Signal{samples: out, sampleRate: g.sampleRate}, nil
}
