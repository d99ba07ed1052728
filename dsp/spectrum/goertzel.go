package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT term with a second-order recursion. It is
// used to read the level of probe tones without computing a full spectrum.
//
// The target frequency does not need to fall on a DFT bin: after N samples,
// Power equals |sum x[n]*exp(-j*w*n)|^2 for w = 2*pi*f/fs.
type Goertzel struct {
	frequency float64
	coeff     float64
	s0, s1    float64
}

// NewGoertzel creates an analyzer for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("%w: %g Hz", ErrInvalidFrequency, frequency)
	}

	return &Goertzel{
		frequency: frequency,
		coeff:     2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the frequency component.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the frequency component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p)
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneMagnitude returns |X(freqHz)| of x in one shot.
func ToneMagnitude(x []float64, freqHz, sampleRate float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}
	g, err := NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(x)
	return g.Magnitude(), nil
}
