package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-firlab/internal/testutil"
)

func TestGenerateAllKinds(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			w, err := Generate(k, 64)
			require.NoError(t, err)
			require.Len(t, w, 64)
			testutil.RequireFinite(t, w)

			// Symmetric about the centre.
			for i := range w {
				assert.InDelta(t, w[i], w[len(w)-1-i], 1e-12, "index %d", i)
			}
		})
	}
}

func TestGoldenVectors(t *testing.T) {
	tests := []struct {
		kind Kind
		want []float64
	}{
		{
			kind: KindHann,
			want: []float64{
				0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
				0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
			},
		},
		{
			kind: KindHamming,
			want: []float64{
				0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
				0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
			},
		},
		{
			kind: KindBlackman,
			want: []float64{
				-1.3877787807814457e-17, 0.09045342435412804, 0.45918295754596355, 0.9203636180999081,
				0.9203636180999083, 0.45918295754596383, 0.09045342435412812, -1.3877787807814457e-17,
			},
		},
		{
			kind: KindRectangular,
			want: []float64{1, 1, 1, 1, 1, 1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := Generate(tt.kind, 8)
			require.NoError(t, err)
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-10)
		})
	}
}

func TestPeriodicHann(t *testing.T) {
	want := []float64{
		0.0, 0.1464466094067262, 0.5, 0.8535533905932737,
		1.0, 0.8535533905932738, 0.5, 0.14644660940672632,
	}

	got, err := Generate(KindHann, 8, WithPeriodic())
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	sym, err := Generate(KindHann, 8)
	require.NoError(t, err)
	assert.NotEqual(t, sym[7], got[7])
}

func TestSingleSampleWindowIsUnity(t *testing.T) {
	for _, k := range Kinds() {
		w, err := Generate(k, 1)
		require.NoError(t, err)
		assert.InDelta(t, 1, w[0], 1e-12, k.String())
	}
}

func TestUnsupportedKindRejectedFirst(t *testing.T) {
	_, err := Generate(Kind(42), 16)
	require.ErrorIs(t, err, ErrUnsupportedKind)

	// Kind is checked before length.
	_, err = Generate(Kind(-1), 0)
	require.ErrorIs(t, err, ErrUnsupportedKind)

	buf := []float64{1, 2, 3}
	require.ErrorIs(t, Apply(Kind(7), buf), ErrUnsupportedKind)
	assert.Equal(t, []float64{1, 2, 3}, buf, "buffer must be untouched on error")
}

func TestInvalidLength(t *testing.T) {
	_, err := Generate(KindHann, 0)
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = Generate(KindHamming, -3)
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"hamming", KindHamming},
		{"HANN", KindHann},
		{"hanning", KindHann},
		{" blackman ", KindBlackman},
		{"rectangular", KindRectangular},
		{"boxcar", KindRectangular},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "kaiser", "flat-top"} {
		_, err := ParseKind(bad)
		assert.ErrorIs(t, err, ErrUnsupportedKind, bad)
	}
}

func TestApplyAndCoefficients(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, Apply(KindRectangular, buf))
	for i, v := range buf {
		assert.Equal(t, float64(i+1), v)
	}

	require.NoError(t, Apply(KindHann, buf))
	assert.InDelta(t, 0, buf[0], 1e-15)

	out, err := ApplyCoefficients([]float64{1, 2, 3}, []float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, out[2], 1e-12)

	_, err = ApplyCoefficients([]float64{1, 2}, []float64{1})
	require.Error(t, err)
}

func TestEquivalentNoiseBandwidth(t *testing.T) {
	for _, k := range Kinds() {
		w, err := Generate(k, 4096, WithPeriodic())
		require.NoError(t, err)

		enbw, err := EquivalentNoiseBandwidth(w)
		require.NoError(t, err)
		assert.InDelta(t, Info(k).ENBW, enbw, 0.01, k.String())
	}

	_, err := EquivalentNoiseBandwidth(nil)
	require.Error(t, err)

	_, err = EquivalentNoiseBandwidth([]float64{0, 0, 0})
	require.Error(t, err)
}

func TestAnalyzeMatchesMetadata(t *testing.T) {
	tests := []struct {
		kind      Kind
		firstNull float64
	}{
		{KindRectangular, 1},
		{KindHann, 2},
		{KindHamming, 2},
		{KindBlackman, 3},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			w, err := Generate(tt.kind, 256, WithPeriodic())
			require.NoError(t, err)

			a := Analyze(w)
			m := Info(tt.kind)
			assert.InDelta(t, m.CoherentGain, a.CoherentGain, 1e-3)
			assert.InDelta(t, m.ENBW, a.ENBW, 0.01)
			assert.InDelta(t, tt.firstNull, a.FirstMinimumBins, 0.1)
			assert.InDelta(t, m.HighestSidelobe, a.HighestSidelobedB, 0.5)
			assert.Less(t, a.ScallopLossdB, 0.0)
			assert.False(t, math.IsNaN(a.Bandwidth3dB))
		})
	}

	assert.Equal(t, Analysis{}, Analyze(nil))
}
