package spectrogram_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-firlab/dsp/spectrogram"
)

func ExampleCompute() {
	const fs = 8000.0
	x := make([]float64, 8000)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / fs)
	}

	s, _ := spectrogram.Compute(x, fs, spectrogram.WithWindowLength(256))
	freqBins, timeBins := s.Shape()
	fmt.Printf("%d frequency bins x %d segments\n", freqBins, timeBins)
	fmt.Printf("first segment centred at %.0f ms\n", s.Times[0]*1000)

	// Output:
	// 129 frequency bins x 61 segments
	// first segment centred at 16 ms
}
