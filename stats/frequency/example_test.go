package frequency_test

import (
	"fmt"

	frequencystats "github.com/cwbudde/algo-firlab/stats/frequency"
)

func ExampleCalculate() {
	freqs := []float64{0, 1000, 2000, 3000, 4000}
	mag := []float64{0, 1, 2, 1, 0}

	s, err := frequencystats.Calculate(freqs, mag)
	if err != nil {
		panic(err)
	}
	fmt.Printf("peak=%.0f centroid=%.0f rolloff=%.0f\n", s.PeakHz, s.Centroid, s.Rolloff)

	// Output:
	// peak=2000 centroid=2000 rolloff=3000
}

func ExampleFlatness() {
	flat := frequencystats.Flatness([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 1, 1, 1})
	fmt.Printf("flatness=%.1f\n", flat)

	// Output:
	// flatness=1.0
}
