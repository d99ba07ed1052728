package firlab

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/dsp/filter/fir"
	"github.com/cwbudde/algo-firlab/dsp/signal"
	"github.com/cwbudde/algo-firlab/dsp/window"
	"github.com/cwbudde/algo-firlab/internal/testutil"
)

const testRate = 44100

func twoTone(t *testing.T) signal.Signal {
	t.Helper()
	x := testutil.MultiTone(testRate, testRate/2,
		testutil.Tone{FreqHz: 200, Amplitude: 1},
		testutil.Tone{FreqHz: 5000, Amplitude: 0.5},
	)
	sig, err := signal.New(x, testRate)
	require.NoError(t, err)
	return sig
}

func lowpassRequest() Request {
	return Request{
		Filter: fir.Spec{
			Kind:   fir.KindLowpass,
			Cutoff: 1000,
			Taps:   101,
			Window: window.KindHamming,
		},
		Analysis: core.DefaultAnalysisConfig(),
		Probes:   []float64{200, 5000},
	}
}

func TestRunLowpass(t *testing.T) {
	sig := twoTone(t)

	report, err := Run(context.Background(), sig, lowpassRequest())
	require.NoError(t, err)

	assert.Equal(t, float64(testRate), report.SampleRate)
	assert.Equal(t, 10000.0, report.MaxFreq)
	assert.Equal(t, 101, report.Design.Taps())
	assert.Equal(t, float64(testRate), report.Design.SampleRate)
	assert.False(t, report.Design.Adjusted())

	require.Equal(t, sig.Len(), report.Filtered.Len())
	testutil.RequireFinite(t, report.Filtered.Samples())

	assert.Equal(t, sig.Len(), report.OriginalSpectrum.Len())
	assert.Equal(t, sig.Len(), report.FilteredSpectrum.Len())
	assert.Len(t, report.Difference.DifferenceDB, sig.Len())
	assert.Equal(t, 2048, report.Response.Len())
	assert.InDelta(t, -6.02, report.Response.At(1000), 1)

	freqBins, timeBins := report.OriginalSpectrogram.Shape()
	assert.Equal(t, 1025, freqBins)
	assert.Equal(t, 20, timeBins)
	fb, tb := report.FilteredSpectrogram.Shape()
	assert.Equal(t, freqBins, fb)
	assert.Equal(t, timeBins, tb)

	s := report.Summary
	assert.InDelta(t, 200, s.Original.PeakHz, 2)
	assert.InDelta(t, 200, s.Filtered.PeakHz, 2)
	assert.Less(t, s.Filtered.Centroid, s.Original.Centroid)

	assert.Equal(t, sig.Len(), s.OriginalLevels.Length)
	assert.InDelta(t, sig.RMS(), s.OriginalLevels.RMS, 1e-9)
	assert.Less(t, s.FilteredLevels.RMS, s.OriginalLevels.RMS)
	assert.Less(t, s.FilteredLevels.ZeroCrossings, s.OriginalLevels.ZeroCrossings)

	require.Len(t, s.Probes, 2)
	pass, stop := s.Probes[0], s.Probes[1]
	assert.Equal(t, 200.0, pass.FrequencyHz)
	assert.InDelta(t, 0, pass.AttenuationDB, 0.5)
	assert.InDelta(t, 0, pass.ResponseDB, 0.5)
	assert.Equal(t, 5000.0, stop.FrequencyHz)
	assert.Greater(t, stop.AttenuationDB, 30.0)
	assert.Less(t, stop.ResponseDB, -50.0)
}

func TestRunDifferenceShowsStopband(t *testing.T) {
	sig := twoTone(t)
	report, err := Run(context.Background(), sig, lowpassRequest())
	require.NoError(t, err)

	// Bins 100 and 2500 hold the 200 Hz and 5000 Hz tones exactly.
	assert.InDelta(t, 0, report.Difference.DifferenceDB[100], 0.5)
	assert.Greater(t, report.Difference.DifferenceDB[2500], 30.0)
}

func TestRunLogsAdjustmentsAndStages(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	req := lowpassRequest()
	req.Filter.Taps = 100

	report, err := Run(context.Background(), twoTone(t), req, WithLogger(zap.New(obsCore)))
	require.NoError(t, err)
	assert.Equal(t, 101, report.Design.Taps())
	require.Len(t, report.Design.Adjustments, 1)

	warn := logs.FilterMessage("filter adjusted").All()
	require.Len(t, warn, 1)
	assert.Equal(t, zapcore.WarnLevel, warn[0].Level)
	assert.EqualValues(t, 100, warn[0].ContextMap()["requested"])
	assert.EqualValues(t, 101, warn[0].ContextMap()["applied"])

	assert.Equal(t, 9, logs.FilterMessage("stage done").Len())
	assert.Equal(t, 1, logs.FilterMessage("analysis complete").Len())
}

func TestRunConcurrencyLimitMatchesUnbounded(t *testing.T) {
	sig := twoTone(t)
	req := lowpassRequest()

	a, err := Run(context.Background(), sig, req)
	require.NoError(t, err)
	b, err := Run(context.Background(), sig, req, WithConcurrency(1))
	require.NoError(t, err)

	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Response, b.Response)
	assert.Equal(t, a.FilteredSpectrogram.PowerDB, b.FilteredSpectrogram.PowerDB)
}

func TestRunShortSignal(t *testing.T) {
	sig, err := signal.New(testutil.Noise(7, 0.5, 300), 8000)
	require.NoError(t, err)

	report, err := Run(context.Background(), sig, Request{
		Filter: fir.Spec{Kind: fir.KindHighpass, Cutoff: 500, Taps: 31, Window: window.KindHann},
	})
	require.NoError(t, err)

	assert.Equal(t, 300, report.OriginalSpectrogram.WindowLength)
	freqBins, timeBins := report.OriginalSpectrogram.Shape()
	assert.Equal(t, 151, freqBins)
	assert.Equal(t, 1, timeBins)
	assert.Len(t, report.Summary.Probes, 3)
}

func TestRunErrors(t *testing.T) {
	sig := twoTone(t)

	t.Run("empty signal", func(t *testing.T) {
		_, err := Run(context.Background(), signal.Signal{}, lowpassRequest())
		require.ErrorIs(t, err, signal.ErrEmptySignal)
	})

	t.Run("sample rate mismatch", func(t *testing.T) {
		req := lowpassRequest()
		req.Filter.SampleRate = 48000
		_, err := Run(context.Background(), sig, req)
		require.ErrorIs(t, err, ErrSampleRateMismatch)
	})

	t.Run("cutoff above nyquist", func(t *testing.T) {
		req := lowpassRequest()
		req.Filter.Cutoff = 30000
		_, err := Run(context.Background(), sig, req)
		require.ErrorIs(t, err, fir.ErrInvalidCutoff)
	})

	t.Run("bad band", func(t *testing.T) {
		req := lowpassRequest()
		req.Filter.Kind = fir.KindBandpass
		req.Filter.CutoffHigh = 500
		_, err := Run(context.Background(), sig, req)
		require.ErrorIs(t, err, fir.ErrInvalidBand)
	})

	t.Run("probe above nyquist", func(t *testing.T) {
		obsCore, logs := observer.New(zapcore.DebugLevel)
		req := lowpassRequest()
		req.Probes = []float64{200, 30000}
		_, err := Run(context.Background(), sig, req, WithLogger(zap.New(obsCore)))
		require.ErrorIs(t, err, ErrInvalidProbe)
		assert.Zero(t, logs.FilterMessage("stage done").Len())
	})

	t.Run("negative probe", func(t *testing.T) {
		req := lowpassRequest()
		req.Probes = []float64{-1}
		_, err := Run(context.Background(), sig, req)
		require.ErrorIs(t, err, ErrInvalidProbe)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, sig, lowpassRequest())
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunDoesNotMutateInput(t *testing.T) {
	sig := twoTone(t)
	before := sig.Samples()

	_, err := Run(context.Background(), sig, lowpassRequest())
	require.NoError(t, err)
	assert.Equal(t, before, sig.Samples())
}

func TestDefaultProbes(t *testing.T) {
	tests := []struct {
		name string
		spec fir.Spec
		want []float64
	}{
		{
			name: "lowpass",
			spec: fir.Spec{Kind: fir.KindLowpass, Cutoff: 1000, SampleRate: 44100},
			want: []float64{500, 1000, 4000},
		},
		{
			name: "highpass",
			spec: fir.Spec{Kind: fir.KindHighpass, Cutoff: 1000, SampleRate: 8000},
			want: []float64{4000, 1000, 250},
		},
		{
			name: "bandpass drops above nyquist",
			spec: fir.Spec{Kind: fir.KindBandpass, Cutoff: 1000, CutoffHigh: 4000, SampleRate: 16000},
			want: []float64{2000, 1000, 4000, 250},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireSliceNearlyEqual(t, DefaultProbes(tt.spec), tt.want, 1e-9)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	report, err := Run(context.Background(), twoTone(t), lowpassRequest())
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, report.WriteJSON(buf))

	var decoded struct {
		SampleRate float64 `json:"sample_rate"`
		Samples    int     `json:"samples"`
		Filter     struct {
			Kind         string    `json:"kind"`
			Taps         int       `json:"taps"`
			Window       string    `json:"window"`
			Coefficients []float64 `json:"coefficients"`
		} `json:"filter"`
		OriginalSpectrum struct {
			Frequencies []float64 `json:"frequencies_hz"`
			Values      []float64 `json:"values_db"`
		} `json:"original_spectrum"`
		FilteredSpectrogram struct {
			Frequencies []float64   `json:"frequencies_hz"`
			PowerDB     [][]float64 `json:"power_db"`
		} `json:"filtered_spectrogram"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, float64(testRate), decoded.SampleRate)
	assert.Equal(t, testRate/2, decoded.Samples)
	assert.Equal(t, "lowpass", decoded.Filter.Kind)
	assert.Equal(t, "hamming", decoded.Filter.Window)
	assert.Equal(t, 101, decoded.Filter.Taps)
	assert.Len(t, decoded.Filter.Coefficients, 101)

	spec := decoded.OriginalSpectrum
	require.NotEmpty(t, spec.Frequencies)
	assert.Len(t, spec.Values, len(spec.Frequencies))
	assert.Greater(t, spec.Frequencies[0], 0.0)
	assert.Less(t, spec.Frequencies[len(spec.Frequencies)-1], 10000.0)

	rows := decoded.FilteredSpectrogram
	require.NotEmpty(t, rows.Frequencies)
	assert.LessOrEqual(t, rows.Frequencies[len(rows.Frequencies)-1], 10000.0)
	assert.Len(t, rows.PowerDB, len(rows.Frequencies))

	assert.Equal(t, report.Summary.Probes, decoded.Summary.Probes)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input string
		spec  fir.Spec
		want  string
	}{
		{"song.wav", fir.Spec{Kind: fir.KindLowpass, Cutoff: 1000}, "song_lowpass_1000Hz.wav"},
		{"/tmp/takes/voice.flac", fir.Spec{Kind: fir.KindHighpass, Cutoff: 250.5}, "voice_highpass_250.5Hz.wav"},
		{"song.wav", fir.Spec{Kind: fir.KindBandpass, Cutoff: 1000, CutoffHigh: 3000}, "song_1000-3000Hz.wav"},
		{"", fir.Spec{Kind: fir.KindLowpass, Cutoff: 1000}, "audio_lowpass_1000Hz.wav"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputName(tt.input, tt.spec), tt.input)
	}
}
