package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-firlab/measure/firlab"
	"github.com/cwbudde/algo-firlab/stats/frequency"
	timestats "github.com/cwbudde/algo-firlab/stats/time"
)

func printReport(w io.Writer, r *firlab.Report) error {
	fmt.Fprintf(w, "%s\n", describeFilter(r.Design))
	fmt.Fprintf(w, "signal: %d samples, %s\n\n", r.Original.Len(), r.Original.Duration())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Signal\tPeak [dB]\tRMS [dB]\tCrest [dB]\tDC\tZero Crossings\n")
	fmt.Fprintf(tw, "------\t---------\t--------\t----------\t--\t--------------\n")
	for _, row := range []struct {
		name   string
		levels timestats.Stats
	}{
		{"original", r.Summary.OriginalLevels},
		{"filtered", r.Summary.FilteredLevels},
	} {
		l := row.levels
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.4f\t%d\n",
			row.name, l.PeakDB, l.RMSDB, l.CrestFactorDB, l.DC, l.ZeroCrossings)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Spectrum\tPeak [Hz]\tCentroid [Hz]\tSpread [Hz]\tRolloff [Hz]\tBandwidth [Hz]\tFlatness\n")
	fmt.Fprintf(tw, "--------\t---------\t-------------\t-----------\t------------\t--------------\t--------\n")
	for _, row := range []struct {
		name  string
		stats frequency.Stats
	}{
		{"original", r.Summary.Original},
		{"filtered", r.Summary.Filtered},
	} {
		s := row.stats
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.4f\n",
			row.name, s.PeakHz, s.Centroid, s.Spread, s.Rolloff, s.Bandwidth, s.Flatness)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Summary.Probes) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Probe [Hz]\tOriginal [dB]\tFiltered [dB]\tAttenuation [dB]\tResponse [dB]\n")
	fmt.Fprintf(tw, "----------\t-------------\t-------------\t----------------\t-------------\n")
	for _, p := range r.Summary.Probes {
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.FrequencyHz, p.OriginalDB, p.FilteredDB, p.AttenuationDB, p.ResponseDB)
	}
	return tw.Flush()
}
