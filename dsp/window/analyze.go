package window

import (
	"math"

	"github.com/cwbudde/algo-firlab/internal/dft"
)

// analysisOversampling is the number of spectrum points per DFT bin.
const analysisOversampling = 32

// Analysis holds numerically measured spectral properties of a window.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// FirstMinimumBins is the position of the first spectral null in bins.
	FirstMinimumBins float64
	// HighestSidelobedB is the highest sidelobe level relative to DC.
	HighestSidelobedB float64
	// ScallopLossdB is the response half a bin away from DC.
	ScallopLossdB float64
}

// Analyze measures the window's spectrum on a zero-padded DFT grid of
// analysisOversampling points per bin.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	if sum == 0 {
		return Analysis{}
	}

	size := nextPowerOf2(n * analysisOversampling)
	bins, err := dft.Real(coeffs, size)
	if err != nil {
		return Analysis{}
	}

	// Power relative to DC over the non-negative half.
	half := size/2 + 1
	rel := make([]float64, half)
	dc := real(bins[0])*real(bins[0]) + imag(bins[0])*imag(bins[0])
	for k := range rel {
		re, im := real(bins[k]), imag(bins[k])
		rel[k] = (re*re + im*im) / dc
	}

	perBin := float64(size) / float64(n)
	toBins := func(k float64) float64 { return k / perBin }

	a := Analysis{
		CoherentGain: sum / float64(n),
		ENBW:         float64(n) * Energy(coeffs) / (sum * sum),
	}

	// Half-power crossing, interpolated between grid points.
	for k := 1; k < half; k++ {
		if rel[k] <= 0.5 {
			frac := (rel[k-1] - 0.5) / (rel[k-1] - rel[k])
			a.Bandwidth3dB = 2 * toBins(float64(k-1)+frac)
			break
		}
	}

	null := half - 1
	for k := 1; k < half-1; k++ {
		if rel[k] <= rel[k-1] && rel[k] < rel[k+1] {
			null = k
			break
		}
	}
	a.FirstMinimumBins = toBins(float64(null))

	peak := 0.0
	for k := null; k < half; k++ {
		peak = math.Max(peak, rel[k])
	}
	if peak > 0 {
		a.HighestSidelobedB = 10 * math.Log10(peak)
	} else {
		a.HighestSidelobedB = math.Inf(-1)
	}

	halfBin := int(math.Round(perBin / 2))
	if halfBin < half && rel[halfBin] > 0 {
		a.ScallopLossdB = 10 * math.Log10(rel[halfBin])
	}

	return a
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
