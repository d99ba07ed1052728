// Package spectrogram computes short-time power spectral density maps.
//
// [Compute] follows the conventions of scipy.signal.spectrogram with a Hann
// window and density scaling: each segment has its mean removed, is weighted
// with a periodic Hann window and transformed; the one-sided power is scaled
// by 1/(fs*sum(w^2)) and doubled everywhere except at DC and, for even
// segment lengths, at Nyquist. The result is in units of power per Hz.
package spectrogram

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/dsp/spectrum"
	"github.com/cwbudde/algo-firlab/dsp/window"
	"github.com/cwbudde/algo-firlab/internal/dft"
)

// DefaultWindowLength is the segment length used when none is given.
const DefaultWindowLength = 2048

// Errors returned by Compute.
var (
	ErrEmptyInput          = errors.New("spectrogram: empty input")
	ErrInvalidSampleRate   = errors.New("spectrogram: sample rate must be positive")
	ErrInvalidWindowLength = errors.New("spectrogram: window length must be positive")
	ErrInvalidOverlap      = errors.New("spectrogram: overlap must be in [0, window length)")
)

// Spectrogram is a time-frequency power map. Power and PowerDB are indexed
// [frequencyBin][timeBin].
type Spectrogram struct {
	Times       []float64
	Frequencies []float64
	Power       [][]float64
	PowerDB     [][]float64

	// WindowLength and Overlap are the segmentation actually used.
	WindowLength int
	Overlap      int
}

// Shape returns the number of frequency and time bins.
func (s Spectrogram) Shape() (freqBins, timeBins int) {
	return len(s.Frequencies), len(s.Times)
}

// Limit returns a copy holding only the frequency rows at or below maxHz.
func (s Spectrogram) Limit(maxHz float64) Spectrogram {
	out := Spectrogram{
		Times:        append([]float64(nil), s.Times...),
		WindowLength: s.WindowLength,
		Overlap:      s.Overlap,
	}
	for k, f := range s.Frequencies {
		if f > maxHz {
			break
		}
		out.Frequencies = append(out.Frequencies, f)
		out.Power = append(out.Power, append([]float64(nil), s.Power[k]...))
		out.PowerDB = append(out.PowerDB, append([]float64(nil), s.PowerDB[k]...))
	}
	return out
}

// Option configures Compute.
type Option func(*config)

type config struct {
	windowLength int
	overlap      int
	overlapSet   bool
}

// WithWindowLength sets the segment length in samples.
func WithWindowLength(n int) Option {
	return func(c *config) { c.windowLength = n }
}

// WithOverlap sets the number of samples shared by adjacent segments.
// The default is half the window length.
func WithOverlap(n int) Option {
	return func(c *config) {
		c.overlap = n
		c.overlapSet = true
	}
}

// Compute returns the spectrogram of x sampled at sampleRate.
//
// Segments start every windowLength-overlap samples and only complete
// segments are used. When x is shorter than the window, the window shrinks
// to len(x). An explicit overlap is kept if it still fits, otherwise the
// overlap becomes half the shrunk window.
func Compute(x []float64, sampleRate float64, opts ...Option) (Spectrogram, error) {
	if len(x) == 0 {
		return Spectrogram{}, ErrEmptyInput
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrogram{}, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	cfg := config{windowLength: DefaultWindowLength}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.windowLength < 1 {
		return Spectrogram{}, fmt.Errorf("%w: %d", ErrInvalidWindowLength, cfg.windowLength)
	}
	if !cfg.overlapSet {
		cfg.overlap = cfg.windowLength / 2
	}
	if cfg.overlap < 0 || cfg.overlap >= cfg.windowLength {
		return Spectrogram{}, fmt.Errorf("%w: overlap %d, window %d", ErrInvalidOverlap, cfg.overlap, cfg.windowLength)
	}

	winLen, overlap := cfg.windowLength, cfg.overlap
	if len(x) < winLen {
		winLen = len(x)
		if !cfg.overlapSet || overlap >= winLen {
			overlap = winLen / 2
		}
	}
	step := winLen - overlap
	segments := (len(x) - overlap) / step
	freqBins := winLen/2 + 1

	w, err := window.Generate(window.KindHann, winLen, window.WithPeriodic())
	if err != nil {
		return Spectrogram{}, fmt.Errorf("spectrogram: %w", err)
	}
	scale := 1 / (sampleRate * window.Energy(w))

	plan, err := dft.NewPlan(winLen)
	if err != nil {
		return Spectrogram{}, fmt.Errorf("spectrogram: %w", err)
	}

	s := Spectrogram{
		Times:        make([]float64, segments),
		Frequencies:  make([]float64, freqBins),
		Power:        make([][]float64, freqBins),
		PowerDB:      make([][]float64, freqBins),
		WindowLength: winLen,
		Overlap:      overlap,
	}
	for k := range s.Frequencies {
		s.Frequencies[k] = float64(k) * sampleRate / float64(winLen)
		s.Power[k] = make([]float64, segments)
		s.PowerDB[k] = make([]float64, segments)
	}

	seg := make([]float64, winLen)
	bins := make([]complex128, winLen)
	lastDoubled := freqBins - 1
	if winLen%2 == 0 {
		lastDoubled--
	}

	for j := 0; j < segments; j++ {
		start := j * step
		s.Times[j] = (float64(winLen)/2 + float64(start)) / sampleRate

		copy(seg, x[start:start+winLen])
		floats.AddConst(-floats.Sum(seg)/float64(winLen), seg)
		floats.Mul(seg, w)

		if err := plan.Real(bins, seg); err != nil {
			return Spectrogram{}, fmt.Errorf("spectrogram: segment %d: %w", j, err)
		}

		power := spectrum.Power(bins[:freqBins])
		for k, p := range power {
			p *= scale
			if k >= 1 && k <= lastDoubled {
				p *= 2
			}
			s.Power[k][j] = p
			s.PowerDB[k][j] = core.PowerToDB(p)
		}
	}

	return s, nil
}
