package fir

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-firlab/dsp/conv"
	"github.com/cwbudde/algo-firlab/dsp/spectrum"
	"github.com/cwbudde/algo-firlab/dsp/window"
	"github.com/cwbudde/algo-firlab/internal/testutil"
)

const fs = 44100.0

func TestLowpassLengthAndUnityDC(t *testing.T) {
	for _, win := range window.Kinds() {
		for _, taps := range []int{1, 3, 31, 101, 255} {
			for _, fc := range []float64{100, 1000, 5000, 20000} {
				t.Run(fmt.Sprintf("%v_taps=%d_fc=%g", win, taps, fc), func(t *testing.T) {
					d, err := Lowpass(fc, fs, taps, win)
					require.NoError(t, err)
					require.Len(t, d.Coefficients, taps)
					assert.False(t, d.Adjusted())
					assert.InDelta(t, 1.0, testutil.Sum(d.Coefficients), 1e-9)
					testutil.RequireFinite(t, d.Coefficients)

					for i := range d.Coefficients {
						require.InDelta(t, d.Coefficients[i], d.Coefficients[taps-1-i], 1e-12, "tap %d", i)
					}
				})
			}
		}
	}
}

func TestHighpassIsSpectralInversion(t *testing.T) {
	for _, taps := range []int{1, 11, 101} {
		lp, err := Lowpass(1000, fs, taps, window.KindHamming)
		require.NoError(t, err)
		hp, err := Highpass(1000, fs, taps, window.KindHamming)
		require.NoError(t, err)

		sum := make([]float64, taps)
		for i := range sum {
			sum[i] = lp.Coefficients[i] + hp.Coefficients[i]
		}
		testutil.RequireSliceNearlyEqual(t, sum, testutil.Impulse(taps, taps/2), 1e-9)
		assert.InDelta(t, 0, testutil.Sum(hp.Coefficients), 1e-9)
	}
}

func TestHighpassResponse(t *testing.T) {
	d, err := Highpass(1000, fs, 101, window.KindHamming)
	require.NoError(t, err)

	assert.Less(t, d.MagnitudeDB(0), -100.0)
	assert.InDelta(t, -6.02, d.MagnitudeDB(1000), 1.0)
	assert.InDelta(t, 0, d.MagnitudeDB(5000), 0.1)
	assert.InDelta(t, 0, d.MagnitudeDB(fs/2), 0.1)
}

func TestEvenTapsAreAdjusted(t *testing.T) {
	d, err := Lowpass(1000, fs, 100, window.KindHamming)
	require.NoError(t, err)

	assert.Equal(t, 101, d.Taps())
	assert.Equal(t, 101, d.Spec.Taps)
	assert.Equal(t, 50, d.Center())
	require.True(t, d.Adjusted())
	assert.Equal(t, []Adjustment{{Requested: 100, Applied: 101}}, d.Adjustments)
	assert.Equal(t, "tap count 100 adjusted to 101", d.Adjustments[0].String())

	bp, err := Bandpass(500, 2000, fs, 64, window.KindHann)
	require.NoError(t, err)
	assert.Equal(t, 65, bp.Taps())
	assert.True(t, bp.Adjusted())
}

func TestDesignValidation(t *testing.T) {
	tests := []struct {
		name   string
		design func() (Design, error)
		want   error
	}{
		{"zero cutoff", func() (Design, error) { return Lowpass(0, fs, 101, window.KindHamming) }, ErrInvalidCutoff},
		{"negative cutoff", func() (Design, error) { return Highpass(-1, fs, 101, window.KindHamming) }, ErrInvalidCutoff},
		{"cutoff at nyquist", func() (Design, error) { return Lowpass(fs/2, fs, 101, window.KindHamming) }, ErrInvalidCutoff},
		{"cutoff above nyquist", func() (Design, error) { return Highpass(30000, fs, 101, window.KindHamming) }, ErrInvalidCutoff},
		{"nan cutoff", func() (Design, error) { return Lowpass(math.NaN(), fs, 101, window.KindHamming) }, ErrInvalidCutoff},
		{"zero sample rate", func() (Design, error) { return Lowpass(1000, 0, 101, window.KindHamming) }, ErrInvalidSampleRate},
		{"zero taps", func() (Design, error) { return Lowpass(1000, fs, 0, window.KindHamming) }, ErrInvalidTaps},
		{"unknown window", func() (Design, error) { return Lowpass(1000, fs, 101, window.Kind(42)) }, ErrUnsupportedWindow},
		{"band reversed", func() (Design, error) { return Bandpass(3000, 1000, fs, 101, window.KindHamming) }, ErrInvalidBand},
		{"band empty", func() (Design, error) { return Bandpass(1000, 1000, fs, 101, window.KindHamming) }, ErrInvalidBand},
		{"band checked first", func() (Design, error) { return Bandpass(3000, 1000, 0, 0, window.Kind(42)) }, ErrInvalidBand},
		{"band high edge", func() (Design, error) { return Bandpass(1000, 30000, fs, 101, window.KindHamming) }, ErrInvalidCutoff},
		{"band sample rate", func() (Design, error) { return Bandpass(1000, 3000, -fs, 101, window.KindHamming) }, ErrInvalidSampleRate},
		{"unknown kind", func() (Design, error) { return New(Spec{Kind: Kind(9), Cutoff: 1000, SampleRate: fs, Taps: 101}) }, ErrUnsupportedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.design()
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, d.Coefficients)
		})
	}
}

func TestUnsupportedWindowWrapsWindowError(t *testing.T) {
	_, err := Highpass(1000, fs, 101, window.Kind(-1))
	require.ErrorIs(t, err, ErrUnsupportedWindow)
	require.ErrorIs(t, err, window.ErrUnsupportedKind)
}

func TestBandpassResponse(t *testing.T) {
	d, err := Bandpass(1000, 3000, fs, 101, window.KindHamming)
	require.NoError(t, err)
	require.Len(t, d.Coefficients, 101)

	abs := 0.0
	for _, c := range d.Coefficients {
		abs += math.Abs(c)
	}
	assert.InDelta(t, 1.0, abs, 1e-12)

	r, err := spectrum.FilterResponse(d.Coefficients, fs, spectrum.DefaultResolution)
	require.NoError(t, err)

	pass := r.At(2000)
	assert.GreaterOrEqual(t, pass-r.At(200), 20.0)
	assert.GreaterOrEqual(t, pass-r.At(8000), 20.0)
}

func TestLowpassResponseAtCutoff(t *testing.T) {
	d, err := Lowpass(1000, fs, 101, window.KindHamming)
	require.NoError(t, err)

	r, err := spectrum.FilterResponse(d.Coefficients, fs, spectrum.DefaultResolution)
	require.NoError(t, err)
	require.Equal(t, spectrum.DefaultResolution, r.Len())

	// The windowed-sinc cutoff is the half-amplitude point.
	assert.InDelta(t, -6.02, r.At(1000), 1.0)
	assert.InDelta(t, 0, d.MagnitudeDB(0), 1e-9)
	assert.Less(t, d.MagnitudeDB(5000), -50.0)

	// The half-power point lies below the cutoff.
	crossing := 0.0
	for f := 0.0; f <= 1000; f++ {
		if d.MagnitudeDB(f) < -3 {
			crossing = f
			break
		}
	}
	assert.Greater(t, crossing, 700.0)
	assert.Less(t, crossing, 1000.0)
}

func TestLowpassAttenuatesTwoToneSignal(t *testing.T) {
	const n = 8820 // 200 ms, 5 Hz bins
	sig := testutil.MultiTone(fs, n,
		testutil.Tone{FreqHz: 200, Amplitude: 1},
		testutil.Tone{FreqHz: 5000, Amplitude: 1},
	)

	d, err := Lowpass(1000, fs, 101, window.KindHamming)
	require.NoError(t, err)

	filtered, err := conv.Apply(sig, d.Coefficients)
	require.NoError(t, err)
	require.Len(t, filtered, n)

	s, err := spectrum.MagnitudeSpectrum(filtered, fs)
	require.NoError(t, err)
	require.Equal(t, 200.0, s.Frequencies[40])
	require.Equal(t, 5000.0, s.Frequencies[1000])

	assert.GreaterOrEqual(t, s.MagnitudeDB[40]-s.MagnitudeDB[1000], 40.0)
}

func TestNewDispatches(t *testing.T) {
	spec := Spec{Kind: KindHighpass, Cutoff: 2000, SampleRate: fs, Taps: 51, Window: window.KindBlackman}

	got, err := New(spec)
	require.NoError(t, err)
	want, err := Highpass(2000, fs, 51, window.KindBlackman)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, spec, got.Spec)

	spec = Spec{Kind: KindBandpass, Cutoff: 300, CutoffHigh: 3400, SampleRate: 8000, Taps: 31, Window: window.KindHann}
	got, err = New(spec)
	require.NoError(t, err)
	assert.Equal(t, KindBandpass, got.Kind)
	assert.Equal(t, 3400.0, got.CutoffHigh)
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{
		"lowpass": KindLowpass, "LP": KindLowpass, " low ": KindLowpass,
		"highpass": KindHighpass, "high": KindHighpass,
		"bandpass": KindBandpass, "Band": KindBandpass,
	} {
		got, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKind("notch")
	require.ErrorIs(t, err, ErrUnsupportedKind)

	assert.Equal(t, "bandpass", KindBandpass.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestDesignDoesNotShareState(t *testing.T) {
	a, err := Lowpass(1000, fs, 31, window.KindHann)
	require.NoError(t, err)
	b, err := Lowpass(1000, fs, 31, window.KindHann)
	require.NoError(t, err)

	a.Coefficients[0] = 99
	assert.NotEqual(t, 99.0, b.Coefficients[0])
}
