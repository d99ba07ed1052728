// Command firlab designs windowed-sinc FIR filters, applies them to WAV
// files and reports how the filter changed the signal.
//
// Usage:
//
//	firlab design --kind lowpass --cutoff 1000 --sample-rate 44100
//	firlab apply input.wav --kind highpass --cutoff 250
//	firlab analyze input.wav --kind bandpass --cutoff 1000 --cutoff-high 3000 --report
//	firlab demo
//	firlab windows --size 1024
//
// Settings are read from flags, FIRLAB_* environment variables and an
// optional firlab.yaml in the working directory or $HOME/.config/firlab.
package main

func main() {
	Execute()
}
