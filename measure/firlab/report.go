package firlab

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-firlab/dsp/filter/fir"
	"github.com/cwbudde/algo-firlab/dsp/signal"
	"github.com/cwbudde/algo-firlab/dsp/spectrogram"
	"github.com/cwbudde/algo-firlab/dsp/spectrum"
	"github.com/cwbudde/algo-firlab/stats/frequency"
	timestats "github.com/cwbudde/algo-firlab/stats/time"
)

// Report holds everything one pipeline run produced.
type Report struct {
	SampleRate float64
	MaxFreq    float64

	Design   fir.Design
	Original signal.Signal
	Filtered signal.Signal

	OriginalSpectrum spectrum.Spectrum
	FilteredSpectrum spectrum.Spectrum
	Difference       spectrum.Difference
	Response         spectrum.FrequencyResponse

	OriginalSpectrogram spectrogram.Spectrogram
	FilteredSpectrogram spectrogram.Spectrogram

	Summary Summary
}

// Summary condenses the signals and their spectra into a few numbers.
type Summary struct {
	Original       frequency.Stats `json:"original"`
	Filtered       frequency.Stats `json:"filtered"`
	OriginalLevels timestats.Stats `json:"original_levels"`
	FilteredLevels timestats.Stats `json:"filtered_levels"`
	Probes         []Probe         `json:"probes"`
}

// Probe compares original and filtered signal at one frequency.
// AttenuationDB is positive when the filter removed energy.
type Probe struct {
	FrequencyHz   float64 `json:"frequency_hz"`
	OriginalDB    float64 `json:"original_db"`
	FilteredDB    float64 `json:"filtered_db"`
	AttenuationDB float64 `json:"attenuation_db"`
	ResponseDB    float64 `json:"response_db"`
}

type filterJSON struct {
	Kind         string    `json:"kind"`
	Cutoff       float64   `json:"cutoff_hz"`
	CutoffHigh   float64   `json:"cutoff_high_hz,omitempty"`
	Taps         int       `json:"taps"`
	Window       string    `json:"window"`
	Coefficients []float64 `json:"coefficients"`
	Adjustments  []string  `json:"adjustments,omitempty"`
}

type curveJSON struct {
	Frequencies []float64 `json:"frequencies_hz"`
	Values      []float64 `json:"values_db"`
}

type spectrogramJSON struct {
	Times        []float64   `json:"times_s"`
	Frequencies  []float64   `json:"frequencies_hz"`
	PowerDB      [][]float64 `json:"power_db"`
	WindowLength int         `json:"window_length"`
	Overlap      int         `json:"overlap"`
}

type reportJSON struct {
	SampleRate          float64         `json:"sample_rate"`
	Samples             int             `json:"samples"`
	DurationSeconds     float64         `json:"duration_s"`
	MaxFreq             float64         `json:"max_freq_hz"`
	Filter              filterJSON      `json:"filter"`
	OriginalSpectrum    curveJSON       `json:"original_spectrum"`
	FilteredSpectrum    curveJSON       `json:"filtered_spectrum"`
	Difference          curveJSON       `json:"difference"`
	Response            curveJSON       `json:"response"`
	OriginalSpectrogram spectrogramJSON `json:"original_spectrogram"`
	FilteredSpectrogram spectrogramJSON `json:"filtered_spectrogram"`
	Summary             Summary         `json:"summary"`
}

// WriteJSON writes the report as indented JSON. Curves are limited to the
// display range: DC is skipped and bins stop below MaxFreq. Spectrogram rows
// stop at MaxFreq.
func (r *Report) WriteJSON(w io.Writer) error {
	out := reportJSON{
		SampleRate:      r.SampleRate,
		Samples:         r.Original.Len(),
		DurationSeconds: r.Original.Duration().Seconds(),
		MaxFreq:         r.MaxFreq,
		Filter: filterJSON{
			Kind:         r.Design.Kind.String(),
			Cutoff:       r.Design.Cutoff,
			Taps:         r.Design.Taps(),
			Window:       r.Design.Window.String(),
			Coefficients: r.Design.Coefficients,
		},
		OriginalSpectrogram: spectrogramView(r.OriginalSpectrogram, r.MaxFreq),
		FilteredSpectrogram: spectrogramView(r.FilteredSpectrogram, r.MaxFreq),
		Summary:             r.Summary,
	}
	if r.Design.Kind == fir.KindBandpass {
		out.Filter.CutoffHigh = r.Design.CutoffHigh
	}
	for _, adj := range r.Design.Adjustments {
		out.Filter.Adjustments = append(out.Filter.Adjustments, adj.String())
	}

	out.OriginalSpectrum.Frequencies, out.OriginalSpectrum.Values = r.OriginalSpectrum.Positive(r.MaxFreq)
	out.FilteredSpectrum.Frequencies, out.FilteredSpectrum.Values = r.FilteredSpectrum.Positive(r.MaxFreq)
	out.Difference.Frequencies, out.Difference.Values = r.Difference.Positive(r.MaxFreq)
	out.Response.Frequencies, out.Response.Values = r.Response.Positive(r.MaxFreq)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("firlab: encode report: %w", err)
	}
	return nil
}

func spectrogramView(s spectrogram.Spectrogram, maxHz float64) spectrogramJSON {
	limited := s.Limit(maxHz)
	return spectrogramJSON{
		Times:        limited.Times,
		Frequencies:  limited.Frequencies,
		PowerDB:      limited.PowerDB,
		WindowLength: limited.WindowLength,
		Overlap:      limited.Overlap,
	}
}

// OutputName returns the file name for the filtered audio derived from the
// input path: <stem>_lowpass_<fc>Hz.wav, <stem>_highpass_<fc>Hz.wav or
// <stem>_<lo>-<hi>Hz.wav.
func OutputName(input string, spec fir.Spec) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		stem = "audio"
	}

	switch spec.Kind {
	case fir.KindBandpass:
		return fmt.Sprintf("%s_%s-%sHz.wav", stem, formatHz(spec.Cutoff), formatHz(spec.CutoffHigh))
	case fir.KindHighpass:
		return fmt.Sprintf("%s_highpass_%sHz.wav", stem, formatHz(spec.Cutoff))
	default:
		return fmt.Sprintf("%s_lowpass_%sHz.wav", stem, formatHz(spec.Cutoff))
	}
}

func formatHz(hz float64) string {
	return strconv.FormatFloat(hz, 'f', -1, 64)
}
