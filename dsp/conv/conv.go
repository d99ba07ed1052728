package conv

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrEvenKernel     = errors.New("conv: kernel length must be odd")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// directThreshold is the longest kernel convolved in the time domain.
const directThreshold = 64

// Mode specifies the output mode for convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns len(a) samples of the full result, starting at
	// (len(b)-1)/2.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSame:
		return "same"
	case ModeValid:
		return "valid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Apply filters signal with the odd-length impulse response h and returns a
// new slice of len(signal) samples. The signal is taken as zero outside its
// extent and output sample i is full[i+(len(h)-1)/2] of the linear
// convolution, so a symmetric kernel introduces no delay. Kernels longer
// than the signal are allowed.
func Apply(signal, h []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(h) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(h)%2 == 0 {
		return nil, fmt.Errorf("%w: got %d taps", ErrEvenKernel, len(h))
	}

	same, err := ConvolveMode(signal, h, ModeSame)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(same))
	copy(out, same)
	return out, nil
}

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	for i, x := range a {
		if x == 0 {
			continue
		}
		floats.AddScaled(dst[i:i+m], x, b)
	}
}

// Convolve performs linear convolution with automatic algorithm selection.
// Kernels of up to 64 samples use direct convolution, longer ones use
// FFT-based overlap-add.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Ensure a is the longer signal for efficient processing
	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b)
}

// ConvolveMode performs convolution with specified output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

// trimToMode extracts the appropriate portion of a full convolution result.
func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
