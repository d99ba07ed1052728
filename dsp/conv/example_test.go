package conv_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-firlab/dsp/conv"
)

func ExampleApply() {
	signal := []float64{0, 0, 4, 0, 0, 8}
	kernel := []float64{0.25, 0.5, 0.25}

	filtered, _ := conv.Apply(signal, kernel)
	fmt.Println(len(filtered), filtered)

	// Output:
	// 6 [0 1 2 1 2 4]
}

func ExampleDirect() {
	signal := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Direct(signal, kernel)

	fmt.Printf("Output length: %d\n", len(result))
	fmt.Printf("First few values: %.2f, %.2f, %.2f\n", result[0], result[1], result[2])

	// Output:
	// Output length: 11
	// First few values: 0.25, 1.00, 2.00
}

func ExampleConvolve() {
	signal := make([]float64, 1000)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * float64(i) / 50)
	}

	// Short kernel uses direct convolution
	result1, _ := conv.Convolve(signal, []float64{0.2, 0.3, 0.3, 0.2})
	fmt.Printf("Short kernel result length: %d\n", len(result1))

	// Longer kernel uses FFT-based convolution
	longKernel := make([]float64, 101)
	for i := range longKernel {
		longKernel[i] = math.Exp(-float64(i) / 20)
	}

	result2, _ := conv.Convolve(signal, longKernel)
	fmt.Printf("Long kernel result length: %d\n", len(result2))

	// Output:
	// Short kernel result length: 1003
	// Long kernel result length: 1100
}
