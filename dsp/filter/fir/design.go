package fir

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-firlab/dsp/conv"
	"github.com/cwbudde/algo-firlab/dsp/spectrum"
	"github.com/cwbudde/algo-firlab/dsp/window"
)

// Defaults used when a caller does not choose a tap count or window.
const (
	DefaultTaps   = 101
	DefaultWindow = window.KindHamming
)

// Kind identifies the filter response shape.
type Kind int

const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
)

var kindNames = map[Kind]string{
	KindLowpass:  "lowpass",
	KindHighpass: "highpass",
	KindBandpass: "bandpass",
}

// String returns the canonical kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a user supplied name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lowpass", "low", "lp":
		return KindLowpass, nil
	case "highpass", "high", "hp":
		return KindHighpass, nil
	case "bandpass", "band", "bp":
		return KindBandpass, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
	}
}

// Spec describes a filter request. Cutoff is the single cutoff for lowpass
// and highpass filters and the lower band edge for bandpass filters;
// CutoffHigh is only read for bandpass filters.
type Spec struct {
	Kind       Kind
	Cutoff     float64
	CutoffHigh float64
	SampleRate float64
	Taps       int
	Window     window.Kind
}

// Adjustment reports that the requested tap count was changed.
type Adjustment struct {
	Requested int
	Applied   int
}

func (a Adjustment) String() string {
	return fmt.Sprintf("tap count %d adjusted to %d", a.Requested, a.Applied)
}

// Design is a designed filter. Spec.Taps holds the applied tap count.
type Design struct {
	Spec
	Coefficients []float64
	Adjustments  []Adjustment
}

// Taps returns the number of coefficients.
func (d Design) Taps() int { return len(d.Coefficients) }

// Center returns the index of the centre tap, which is also the group delay
// in samples.
func (d Design) Center() int { return (len(d.Coefficients) - 1) / 2 }

// Adjusted reports whether the request was modified during design.
func (d Design) Adjusted() bool { return len(d.Adjustments) > 0 }

// Response returns the complex frequency response at freqHz.
func (d Design) Response(freqHz float64) complex128 {
	return spectrum.ResponseAt(d.Coefficients, freqHz, d.SampleRate)
}

// MagnitudeDB returns the epsilon-guarded magnitude response in dB at freqHz.
func (d Design) MagnitudeDB(freqHz float64) float64 {
	return spectrum.MagnitudeAt(d.Coefficients, freqHz, d.SampleRate)
}

// New designs the filter described by spec.
func New(spec Spec) (Design, error) {
	switch spec.Kind {
	case KindLowpass:
		return Lowpass(spec.Cutoff, spec.SampleRate, spec.Taps, spec.Window)
	case KindHighpass:
		return Highpass(spec.Cutoff, spec.SampleRate, spec.Taps, spec.Window)
	case KindBandpass:
		return Bandpass(spec.Cutoff, spec.CutoffHigh, spec.SampleRate, spec.Taps, spec.Window)
	default:
		return Design{}, fmt.Errorf("%w: %v", ErrUnsupportedKind, spec.Kind)
	}
}

// Lowpass designs a windowed-sinc lowpass filter with unity DC gain.
//
//	h[i] = sinc(2*fc/fs * (i - (taps-1)/2)) * w[i] / sum
func Lowpass(fc, fs float64, taps int, win window.Kind) (Design, error) {
	if err := validate(fs, taps, win, fc); err != nil {
		return Design{}, err
	}

	d := newDesign(Spec{Kind: KindLowpass, Cutoff: fc, SampleRate: fs, Taps: taps, Window: win})
	h, err := lowpass(fc, fs, d.Spec.Taps, win)
	if err != nil {
		return Design{}, err
	}
	d.Coefficients = h
	return d, nil
}

// Highpass designs the spectral inversion of the matching lowpass: the
// lowpass subtracted from a unit impulse at the centre tap.
func Highpass(fc, fs float64, taps int, win window.Kind) (Design, error) {
	if err := validate(fs, taps, win, fc); err != nil {
		return Design{}, err
	}

	d := newDesign(Spec{Kind: KindHighpass, Cutoff: fc, SampleRate: fs, Taps: taps, Window: win})
	h, err := highpass(fc, fs, d.Spec.Taps, win)
	if err != nil {
		return Design{}, err
	}
	d.Coefficients = h
	return d, nil
}

// Bandpass designs a bandpass filter by convolving a lowpass at fcHigh with
// a highpass at fcLow, cropped to the tap count, and dividing by the sum of
// absolute coefficient values. The resulting passband gain is close to but
// not exactly 0 dB.
func Bandpass(fcLow, fcHigh, fs float64, taps int, win window.Kind) (Design, error) {
	if fcLow >= fcHigh {
		return Design{}, fmt.Errorf("%w: %g Hz >= %g Hz", ErrInvalidBand, fcLow, fcHigh)
	}
	if err := validate(fs, taps, win, fcLow, fcHigh); err != nil {
		return Design{}, err
	}

	d := newDesign(Spec{
		Kind:       KindBandpass,
		Cutoff:     fcLow,
		CutoffHigh: fcHigh,
		SampleRate: fs,
		Taps:       taps,
		Window:     win,
	})

	lp, err := lowpass(fcHigh, fs, d.Spec.Taps, win)
	if err != nil {
		return Design{}, err
	}
	hp, err := highpass(fcLow, fs, d.Spec.Taps, win)
	if err != nil {
		return Design{}, err
	}

	h, err := conv.Apply(lp, hp)
	if err != nil {
		return Design{}, fmt.Errorf("fir: cascade: %w", err)
	}
	floats.Scale(1/floats.Norm(h, 1), h)

	d.Coefficients = h
	return d, nil
}

// newDesign forces an odd tap count and records the change.
func newDesign(spec Spec) Design {
	d := Design{Spec: spec}
	if spec.Taps%2 == 0 {
		d.Spec.Taps = spec.Taps + 1
		d.Adjustments = append(d.Adjustments, Adjustment{Requested: spec.Taps, Applied: d.Spec.Taps})
	}
	return d
}

func validate(fs float64, taps int, win window.Kind, cutoffs ...float64) error {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, fs)
	}
	nyquist := fs / 2
	for _, fc := range cutoffs {
		if !(fc > 0 && fc < nyquist) {
			return fmt.Errorf("%w: %g Hz (nyquist %g Hz)", ErrInvalidCutoff, fc, nyquist)
		}
	}
	if taps < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidTaps, taps)
	}
	if !win.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedWindow, win)
	}
	return nil
}

// lowpass expects validated arguments and an odd tap count.
func lowpass(fc, fs float64, taps int, win window.Kind) ([]float64, error) {
	w, err := window.Generate(win, taps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedWindow, err)
	}

	h := make([]float64, taps)
	center := (taps - 1) / 2
	ratio := 2 * fc / fs
	for i := range h {
		h[i] = sinc(ratio * float64(i-center))
	}
	floats.Mul(h, w)
	floats.Scale(1/floats.Sum(h), h)
	return h, nil
}

func highpass(fc, fs float64, taps int, win window.Kind) ([]float64, error) {
	h, err := lowpass(fc, fs, taps, win)
	if err != nil {
		return nil, err
	}
	floats.Scale(-1, h)
	h[(taps-1)/2] += 1
	return h, nil
}

// sinc is the normalized sinc function sin(pi*x)/(pi*x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
