// Package firlab runs the filter lab pipeline: design a windowed-sinc FIR
// filter, apply it to a signal and compute the diagnostics that compare the
// filtered signal with the original.
//
// The analyses after filtering are independent of each other and run
// concurrently. All results are collected in a [Report], which can be
// exported as JSON trimmed to the display frequency range.
//
// Basic usage:
//
//	report, err := firlab.Run(ctx, sig, firlab.Request{
//		Filter: fir.Spec{Kind: fir.KindLowpass, Cutoff: 1000, Taps: 101, Window: window.KindHamming},
//		Analysis: core.DefaultAnalysisConfig(),
//	}, firlab.WithLogger(logger))
package firlab
