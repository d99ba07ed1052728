// Package testutil holds assertions and signal fixtures shared by the
// package tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireSliceNearlyEqual fails t unless got and want have equal length and
// every element pair is within eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			require.Failf(t, "slices differ",
				"index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			require.Failf(t, "non-finite value", "index %d: %v", i, v)
		}
	}
}

// MaxAbs returns the largest absolute value in data.
func MaxAbs(data []float64) float64 {
	m := 0.0
	for _, v := range data {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// Sum returns the plain sum of data.
func Sum(data []float64) float64 {
	s := 0.0
	for _, v := range data {
		s += v
	}
	return s
}
