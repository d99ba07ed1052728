package window

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is returned for window identifiers outside the closed set.
var ErrUnsupportedKind = errors.New("window: unsupported kind")

// ErrInvalidLength is returned for window lengths below 1.
var ErrInvalidLength = errors.New("window: length must be > 0")

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}
	return nil
}
