package spectrum

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/internal/dft"
)

// Spectrum is the magnitude spectrum of a signal. All slices have one entry
// per DFT bin.
type Spectrum struct {
	Frequencies []float64
	Magnitude   []float64
	MagnitudeDB []float64
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Frequencies) }

// Positive returns the display view of the spectrum: bins 1 up to (not
// including) the first bin at or above maxHz. DC is skipped. When maxHz lies
// beyond the highest positive bin, the whole positive half is returned.
func (s Spectrum) Positive(maxHz float64) (freqs, magDB []float64) {
	lo, hi := positiveRange(s.Frequencies, maxHz)
	return clone(s.Frequencies[lo:hi]), clone(s.MagnitudeDB[lo:hi])
}

// Difference holds original-minus-processed magnitudes in dB per DFT bin.
// Positive values mean the processed signal was attenuated.
type Difference struct {
	Frequencies  []float64
	DifferenceDB []float64
}

// Positive returns the display view of the difference, see Spectrum.Positive.
func (d Difference) Positive(maxHz float64) (freqs, diffDB []float64) {
	lo, hi := positiveRange(d.Frequencies, maxHz)
	return clone(d.Frequencies[lo:hi]), clone(d.DifferenceDB[lo:hi])
}

// MagnitudeSpectrum computes the full-length DFT magnitude spectrum of x.
func MagnitudeSpectrum(x []float64, sampleRate float64) (Spectrum, error) {
	if len(x) == 0 {
		return Spectrum{}, ErrEmptyInput
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return Spectrum{}, err
	}

	bins, err := dft.Real(x, len(x))
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: %w", err)
	}

	mag := Magnitude(bins)
	return Spectrum{
		Frequencies: FFTFrequencies(len(x), sampleRate),
		Magnitude:   mag,
		MagnitudeDB: core.AmplitudeToDBInto(nil, mag),
	}, nil
}

// SpectralDifference returns MagnitudeDB(original) - MagnitudeDB(processed)
// bin by bin. Both signals must have the same length.
func SpectralDifference(original, processed []float64, sampleRate float64) (Difference, error) {
	if len(original) != len(processed) {
		return Difference{}, fmt.Errorf("%w: original has %d samples, processed has %d",
			ErrLengthMismatch, len(original), len(processed))
	}

	orig, err := MagnitudeSpectrum(original, sampleRate)
	if err != nil {
		return Difference{}, err
	}
	proc, err := MagnitudeSpectrum(processed, sampleRate)
	if err != nil {
		return Difference{}, err
	}

	return DifferenceOf(orig, proc)
}

// DifferenceOf subtracts two already computed spectra.
func DifferenceOf(original, processed Spectrum) (Difference, error) {
	if original.Len() != processed.Len() {
		return Difference{}, fmt.Errorf("%w: %d != %d bins", ErrLengthMismatch, original.Len(), processed.Len())
	}

	diff := make([]float64, original.Len())
	for i := range diff {
		diff[i] = original.MagnitudeDB[i] - processed.MagnitudeDB[i]
	}
	return Difference{Frequencies: clone(original.Frequencies), DifferenceDB: diff}, nil
}

// FFTFrequencies returns the centre frequency of each of n DFT bins at
// sampleRate, in FFT order (non-negative bins first, then negative ones).
func FFTFrequencies(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	df := sampleRate / float64(n)
	pos := (n-1)/2 + 1
	for k := range out {
		if k < pos {
			out[k] = float64(k) * df
		} else {
			out[k] = float64(k-n) * df
		}
	}
	return out
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	scratchPool.Put(buf)
	return out
}

// InterpolateLinear performs piecewise-linear interpolation at queryX.
// Queries outside x are clamped to the first or last value.
//
// x must be strictly increasing and have the same length as y.
func InterpolateLinear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("%w: interpolate requires non-empty x and y", ErrEmptyInput)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: interpolate x/y %d != %d", ErrLengthMismatch, len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("spectrum: interpolate x must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(queryX))
	for i, q := range queryX {
		if q <= x[0] {
			out[i] = y[0]
			continue
		}
		if q >= x[len(x)-1] {
			out[i] = y[len(y)-1]
			continue
		}

		j := sort.SearchFloat64s(x, q)
		x0, x1 := x[j-1], x[j]
		t := (q - x0) / (x1 - x0)
		out[i] = y[j-1] + t*(y[j]-y[j-1])
	}
	return out, nil
}

// positiveRange returns [1, first index with f >= maxHz) within the
// non-negative half of an FFT-ordered frequency axis.
func positiveRange(freqs []float64, maxHz float64) (lo, hi int) {
	n := len(freqs)
	if n < 2 {
		return 0, 0
	}
	end := (n-1)/2 + 1
	for k := 1; k < end; k++ {
		if freqs[k] >= maxHz {
			return 1, k
		}
	}
	return 1, end
}

func checkSampleRate(fs float64) error {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, fs)
	}
	return nil
}

func clone(s []float64) []float64 {
	return append([]float64(nil), s...)
}
