// Package spectrum computes the frequency-domain diagnostics of the filter
// lab: magnitude spectra of signals, the spectral difference between an
// original and a filtered signal, and the frequency response of FIR
// coefficients.
//
// All spectra use the full DFT bin layout produced by FFT libraries
// (numpy fftfreq ordering): bin k holds k*fs/N for k <= (N-1)/2 and the
// negative frequency (k-N)*fs/N otherwise. Decibel values are
// 20*log10(|X|+1e-10), so silent bins sit at -200 dB instead of -Inf.
//
// Transforms are delegated to internal/dft, which uses algo-fft for
// power-of-two lengths and a Bluestein transform for every other length.
package spectrum
