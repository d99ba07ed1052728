package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-firlab/dsp/conv"
	"github.com/cwbudde/algo-firlab/dsp/filter/fir"
	"github.com/cwbudde/algo-firlab/internal/audio"
	"github.com/cwbudde/algo-firlab/measure/firlab"
)

func newApplyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <input.wav>",
		Short: "Filter a WAV file and write the result",
		Long: `apply designs the configured filter for the sample rate of the input,
filters the mono downmix and writes 16-bit PCM to the output directory under a
name describing the filter, e.g. song_lowpass_1000Hz.wav.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			sig, format, err := audio.ReadWAVFile(input)
			if err != nil {
				return err
			}
			a.logger.Info("loaded audio",
				zap.String("path", input),
				zap.Int("channels", format.Channels),
				zap.Int("bits", format.BitsPerSample),
				zap.Float64("sample_rate", sig.SampleRate()),
				zap.Duration("duration", sig.Duration()),
			)

			spec, err := a.cfg.FilterSpec(sig.SampleRate())
			if err != nil {
				return err
			}
			design, err := fir.New(spec)
			if err != nil {
				return fmt.Errorf("apply: %w", err)
			}
			for _, adj := range design.Adjustments {
				a.logger.Warn("filter adjusted", zap.String("detail", adj.String()))
			}

			y, err := conv.Apply(sig.Samples(), design.Coefficients)
			if err != nil {
				return fmt.Errorf("apply: %w", err)
			}
			filtered, err := sig.Derive(y)
			if err != nil {
				return fmt.Errorf("apply: %w", err)
			}

			path, err := outputPath(a.cfg.Output.Dir, firlab.OutputName(input, spec))
			if err != nil {
				return err
			}
			if err := audio.WriteWAVFile(path, filtered); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\nwrote %s\n", describeFilter(design), path)
			return nil
		},
	}

	addFilterFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

// outputPath joins dir and name, creating dir when needed.
func outputPath(dir, name string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}
