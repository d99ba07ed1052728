// Package window generates the finite weighting sequences used by the FIR
// designer and the spectrogram engine.
//
// The set of supported windows is closed: [KindRectangular], [KindHann],
// [KindHamming] and [KindBlackman]. String names are accepted only through
// [ParseKind] at configuration boundaries.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Kind identifies a window function.
type Kind int

const (
	KindRectangular Kind = iota
	KindHann
	KindHamming
	KindBlackman
)

var kindNames = map[Kind]string{
	KindRectangular: "rectangular",
	KindHann:        "hann",
	KindHamming:     "hamming",
	KindBlackman:    "blackman",
}

// Cosine-sum coefficients: w(x) = sum_k c[k]*cos(2*pi*k*x), x in [0, 1].
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Metadata holds spectral properties of a window kind.
type Metadata struct {
	Name            string
	CoherentGain    float64
	ENBW            float64
	HighestSidelobe float64
}

var metadataByKind = map[Kind]Metadata{
	KindRectangular: {Name: "Rectangular", CoherentGain: 1, ENBW: 1, HighestSidelobe: -13.26},
	KindHann:        {Name: "Hann", CoherentGain: 0.5, ENBW: 1.5, HighestSidelobe: -31.47},
	KindHamming:     {Name: "Hamming", CoherentGain: 0.54, ENBW: 1.363, HighestSidelobe: -42.68},
	KindBlackman:    {Name: "Blackman", CoherentGain: 0.42, ENBW: 1.727, HighestSidelobe: -58.11},
}

// String returns the canonical lower-case name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("window.Kind(%d)", int(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Kinds returns every supported window kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRectangular, KindHann, KindHamming, KindBlackman}
}

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rect", "boxcar", "ones":
		return KindRectangular, nil
	case "hann", "hanning":
		return KindHann, nil
	case "hamming":
		return KindHamming, nil
	case "blackman":
		return KindBlackman, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures the periodic (DFT-even) form used for spectral
// framing instead of the symmetric form used for filter design.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns length coefficients of the requested window.
//
// The kind is checked before anything is allocated. The symmetric form spans
// n = 0..length-1 over a denominator of length-1, so a length of 1 yields [1].
func Generate(k Kind, length int, opts ...Option) ([]float64, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKind, k)
	}
	if err := validateLength(length); err != nil {
		return nil, err
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(k, samplePosition(i, length, cfg.periodic))
	}

	return out, nil
}

// Apply multiplies buf in place by the selected window.
func Apply(k Kind, buf []float64, opts ...Option) error {
	if len(buf) == 0 {
		return nil
	}

	coeffs, err := Generate(k, len(buf), opts...)
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(buf, coeffs)
	return nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// Info returns static metadata for a window kind.
func Info(k Kind) Metadata {
	if m, ok := metadataByKind[k]; ok {
		return m
	}

	return Metadata{}
}

// Energy returns sum(w[n]^2), the normalisation used by density spectra.
func Energy(coeffs []float64) float64 {
	sum := 0.0
	for _, c := range coeffs {
		sum += c * c
	}
	return sum
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * Energy(coeffs) / (sum * sum), nil
}

func evalWindow(k Kind, x float64) float64 {
	switch k {
	case KindRectangular:
		return 1
	case KindHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case KindHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case KindBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	default:
		panic("window: unreachable kind " + k.String())
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
