package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/dsp/filter/fir"
)

func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("kind", fir.KindLowpass.String(), "filter kind (lowpass, highpass, bandpass)")
	f.Float64("cutoff", 1000, "cutoff frequency in Hz (low edge for bandpass)")
	f.Float64("cutoff-high", 3000, "high edge in Hz for bandpass filters")
	f.Int("taps", fir.DefaultTaps, "number of taps, even values are raised by one")
	f.String("window", fir.DefaultWindow.String(), "window (rectangular, hann, hamming, blackman)")
}

func addAnalysisFlags(cmd *cobra.Command) {
	defaults := core.DefaultAnalysisConfig()
	f := cmd.Flags()
	f.Int("resolution", defaults.Resolution, "DFT length of the filter frequency response")
	f.Int("spectrogram-window", defaults.SpectrogramWindow, "spectrogram segment length in samples")
	f.Int("spectrogram-overlap", defaults.SpectrogramOverlap, "spectrogram overlap in samples (0 means half the window)")
	f.Float64("max-freq", defaults.MaxFreq, "upper frequency of report curves in Hz")
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("out-dir", ".", "directory for written files")
	f.Bool("report", false, "write a JSON report next to the filtered audio")
}
