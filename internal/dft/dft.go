// Package dft provides the forward discrete Fourier transform used by the
// spectrum and spectrogram packages.
//
// Power-of-two sizes from 16 points up run on an algo-fft plan. Every other
// size falls back to go-dsp, whose Bluestein path keeps prime and odd lengths
// at O(n log n).
package dft

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
)

// ErrInvalidSize is returned for transform sizes below 1.
var ErrInvalidSize = errors.New("dft: size must be > 0")

// minPlanSize is the smallest power of two handed to algo-fft.
const minPlanSize = 16

// Plan is a forward transform of fixed size. A Plan owns scratch memory and
// must not be shared between goroutines.
type Plan struct {
	n       int
	pow2    *algofft.Plan[complex128]
	scratch []complex128
}

// NewPlan prepares a forward transform of n points.
func NewPlan(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	p := &Plan{
		n:       n,
		scratch: make([]complex128, n),
	}

	if n >= minPlanSize && isPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("dft: failed to create FFT plan: %w", err)
		}
		p.pow2 = plan
	}

	return p, nil
}

// Len returns the transform size.
func (p *Plan) Len() int {
	return p.n
}

// Real transforms the real sequence src into dst.
//
// src is zero-padded or truncated to the plan size; dst must hold Len() bins.
// src is never modified.
func (p *Plan) Real(dst []complex128, src []float64) error {
	if len(dst) != p.n {
		return fmt.Errorf("dft: destination length %d, want %d", len(dst), p.n)
	}

	for i := range p.scratch {
		p.scratch[i] = 0
	}
	m := min(len(src), p.n)
	for i := 0; i < m; i++ {
		p.scratch[i] = complex(src[i], 0)
	}

	if p.pow2 != nil {
		if err := p.pow2.Forward(dst, p.scratch); err != nil {
			return fmt.Errorf("dft: forward FFT failed: %w", err)
		}
		return nil
	}

	copy(dst, fft.FFT(p.scratch))
	return nil
}

// Real returns the n-point DFT of x, zero-padding or truncating as needed.
func Real(x []float64, n int) ([]complex128, error) {
	p, err := NewPlan(n)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	if err := p.Real(out, x); err != nil {
		return nil, err
	}
	return out, nil
}

func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
