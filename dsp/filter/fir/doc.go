// Package fir designs linear-phase FIR filters with the windowed-sinc method.
//
// [Lowpass] truncates the ideal sinc impulse response to the requested tap
// count, weights it with a window from dsp/window and normalizes it to unity
// DC gain. [Highpass] is the spectral inversion of the matching lowpass and
// [Bandpass] cascades a lowpass at the upper edge with a highpass at the
// lower edge.
//
// Tap counts are always odd so that the impulse response has a centre tap.
// An even request is raised by one and reported in [Design.Adjustments].
//
// The designed coefficients are applied with dsp/conv.Apply:
//
//	d, err := fir.Lowpass(1000, 44100, 101, window.KindHamming)
//	filtered, err := conv.Apply(samples, d.Coefficients)
//
// Note that the windowed-sinc cutoff is the half-amplitude (-6 dB) point of
// the response; the -3 dB point lies somewhat below it.
package fir
