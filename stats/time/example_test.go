package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-firlab/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d crest=%.1f\n", s.RMS, s.ZeroCrossings, s.CrestFactor)

	// Output:
	// rms=1.0 zc=3 crest=1.0
}

func ExampleCalculate_silence() {
	s := timestats.Calculate(make([]float64, 8))
	fmt.Printf("rms=%.0f dB crest=%.0f\n", s.RMSDB, s.CrestFactor)

	// Output:
	// rms=-200 dB crest=0
}
