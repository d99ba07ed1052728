package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-firlab/dsp/signal"
	"github.com/cwbudde/algo-firlab/internal/audio"
	"github.com/cwbudde/algo-firlab/measure/firlab"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <input.wav>",
		Short: "Filter a WAV file and compare it with the original",
		Long: `analyze runs the full lab pipeline on the input: filter design,
filtering, magnitude spectra of both signals, their difference, the filter
response and both spectrograms. It prints a summary, writes the filtered
audio and, with --report, a JSON report trimmed to --max-freq.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			sig, _, err := audio.ReadWAVFile(input)
			if err != nil {
				return err
			}
			return a.runPipeline(cmd, sig, input, true)
		},
	}

	addFilterFlags(cmd)
	addAnalysisFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

// runPipeline analyzes sig and prints the summary. With write set it also
// stores the filtered audio and the optional report, named after input.
func (a *app) runPipeline(cmd *cobra.Command, sig signal.Signal, input string, write bool) error {
	spec, err := a.cfg.FilterSpec(sig.SampleRate())
	if err != nil {
		return err
	}

	report, err := firlab.Run(cmd.Context(), sig, firlab.Request{
		Filter:   spec,
		Analysis: a.cfg.AnalysisConfig(),
	}, firlab.WithLogger(a.logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printReport(out, report); err != nil {
		return err
	}

	if !write {
		return nil
	}
	wavPath, err := outputPath(a.cfg.Output.Dir, firlab.OutputName(input, spec))
	if err != nil {
		return err
	}
	if err := audio.WriteWAVFile(wavPath, report.Filtered); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nwrote %s\n", wavPath)

	if !a.cfg.Output.Report {
		return nil
	}
	reportPath := strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + ".json"
	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	a.logger.Debug("report written", zap.String("path", reportPath))
	fmt.Fprintf(out, "wrote %s\n", reportPath)
	return nil
}
