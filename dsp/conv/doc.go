// Package conv provides the linear convolution used to apply FIR filters.
//
// [Apply] is the filtering entry point: it convolves a signal with an
// odd-length impulse response and crops the result to the signal length,
// centred on the kernel's middle tap ("same" convolution).
//
// The lower-level functions select between two strategies:
//
//   - Direct convolution: O(N*M) time-domain convolution for kernels of up to 64 samples
//   - Overlap-add (OLA): FFT-based block convolution for longer kernels
//
// # Usage
//
//	filtered, err := conv.Apply(signal, coefficients)      // len(filtered) == len(signal)
//	full, err := conv.Convolve(signal, kernel)             // len(signal)+len(kernel)-1
//	same, err := conv.ConvolveMode(a, b, conv.ModeSame)    // any kernel length
//
// For repeated convolution with the same kernel, create a reusable convolver:
//
//	c, err := conv.NewOverlapAdd(kernel, blockSize)
//	result, err := c.Process(signal)
//
// # Same-mode cropping
//
// For a kernel of length L and a signal of length N the full convolution has
// N+L-1 samples. ModeSame keeps full[(L-1)/2 : (L-1)/2+N]. For odd L this is
// exactly centred; for even L the extra sample is dropped from the end.
package conv
