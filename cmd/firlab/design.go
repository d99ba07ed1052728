package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-firlab/dsp/filter/fir"
)

func newDesignCmd(a *app) *cobra.Command {
	var (
		sampleRate   float64
		coefficients bool
	)

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design a filter and print its key properties",
		Example: `  firlab design --cutoff 1000 --sample-rate 44100
  firlab design --kind bandpass --cutoff 1000 --cutoff-high 3000 --coefficients`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := a.cfg.FilterSpec(sampleRate)
			if err != nil {
				return err
			}
			design, err := fir.New(spec)
			if err != nil {
				return fmt.Errorf("design: %w", err)
			}
			for _, adj := range design.Adjustments {
				a.logger.Warn("filter adjusted", zap.String("detail", adj.String()))
			}
			return printDesign(cmd, design, coefficients)
		},
	}

	cmd.Flags().Float64Var(&sampleRate, "sample-rate", 44100, "sample rate in Hz")
	cmd.Flags().BoolVar(&coefficients, "coefficients", false, "print every coefficient")
	addFilterFlags(cmd)
	return cmd
}

func printDesign(cmd *cobra.Command, d fir.Design, coefficients bool) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", describeFilter(d))
	for _, adj := range d.Adjustments {
		fmt.Fprintf(out, "note: %s\n", adj)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tResponse [dB]\n")
	fmt.Fprintf(tw, "--------------\t-------------\n")
	for _, hz := range responsePoints(d) {
		fmt.Fprintf(tw, "%.1f\t%.2f\n", hz, d.MagnitudeDB(hz))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if coefficients {
		fmt.Fprintln(out)
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Index\tCoefficient\n")
		for i, c := range d.Coefficients {
			fmt.Fprintf(tw, "%d\t%.10f\n", i, c)
		}
		return tw.Flush()
	}
	return nil
}

func describeFilter(d fir.Design) string {
	band := fmt.Sprintf("%g Hz", d.Cutoff)
	if d.Kind == fir.KindBandpass {
		band = fmt.Sprintf("%g-%g Hz", d.Cutoff, d.CutoffHigh)
	}
	return fmt.Sprintf("%s %s, %d taps, %s window, fs %g Hz, delay %d samples",
		d.Kind, band, d.Taps(), d.Window, d.SampleRate, d.Center())
}

// responsePoints lists DC, the band edges, octaves around them and Nyquist.
func responsePoints(d fir.Design) []float64 {
	edges := []float64{d.Cutoff}
	if d.Kind == fir.KindBandpass {
		edges = append(edges, d.CutoffHigh)
	}

	nyquist := d.SampleRate / 2
	points := []float64{0}
	for _, e := range edges {
		for _, p := range []float64{e / 2, e, e * 2} {
			if p > points[len(points)-1] && p < nyquist {
				points = append(points, p)
			}
		}
	}
	return append(points, nyquist)
}
