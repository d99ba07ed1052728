package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSweepStartsAtZeroAndStaysBounded(t *testing.T) {
	g, err := NewGenerator(8000)
	require.NoError(t, err)

	sig, err := g.LogSweep(20, 4000, 0.5, 8000)
	require.NoError(t, err)
	require.Equal(t, 8000, sig.Len())
	assert.Equal(t, 8000.0, sig.SampleRate())
	assert.InDelta(t, 0, sig.At(0), 1e-12)
	assert.LessOrEqual(t, sig.Peak(), 0.5+1e-12)
	assert.Greater(t, sig.Peak(), 0.49)
}

func TestLogSweepFrequencyRises(t *testing.T) {
	g, err := NewGenerator(16000)
	require.NoError(t, err)

	sig, err := g.LogSweep(50, 5000, 1, 16000)
	require.NoError(t, err)

	// Zero crossings per 1000 samples grow as the sweep advances.
	crossings := func(from, to int) int {
		n := 0
		for i := from + 1; i < to; i++ {
			if math.Signbit(sig.At(i)) != math.Signbit(sig.At(i-1)) {
				n++
			}
		}
		return n
	}
	early := crossings(0, 1000)
	late := crossings(15000, 16000)
	assert.Greater(t, late, 10*early)
}

func TestLogSweepRejectsBadRange(t *testing.T) {
	g, err := NewGenerator(8000)
	require.NoError(t, err)

	for _, tc := range []struct{ start, end float64 }{
		{0, 1000},
		{1000, 1000},
		{2000, 1000},
		{100, 4001},
	} {
		_, err := g.LogSweep(tc.start, tc.end, 1, 100)
		require.ErrorIs(t, err, ErrInvalidSweep, "%v", tc)
	}

	_, err = g.LogSweep(100, 1000, 1, 0)
	require.ErrorIs(t, err, ErrEmptySignal)
}
