package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-firlab/dsp/signal"
	"github.com/cwbudde/algo-firlab/internal/audio"
)

const (
	demoTwoTone = "twotone"
	demoSweep   = "sweep"
	demoNoise   = "noise"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		kind       string
		duration   time.Duration
		sampleRate float64
		seed       int64
		write      bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the lab on a synthetic signal",
		Long: `demo generates a test signal and runs the full analysis on it. The
default is the two-tone signal of 200 Hz plus 5000 Hz, which a 1 kHz lowpass
should reduce to its low tone. A logarithmic sweep or white noise can be used
instead. With --write the demo input, the filtered signal and the optional
report are written to the output directory.`,
		Example: `  firlab demo
  firlab demo --signal sweep --kind bandpass --cutoff 500 --cutoff-high 2000 --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := signal.NewGenerator(sampleRate, signal.WithSeed(seed))
			if err != nil {
				return err
			}
			sig, err := demoSignal(gen, kind, gen.SampleCount(duration))
			if err != nil {
				return err
			}

			if write {
				path, err := outputPath(a.cfg.Output.Dir, "demo_"+kind+".wav")
				if err != nil {
					return err
				}
				if err := audio.WriteWAVFile(path, sig); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return a.runPipeline(cmd, sig, "demo_"+kind, write)
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "signal", demoTwoTone, "demo signal (twotone, sweep, noise)")
	f.DurationVar(&duration, "duration", time.Second, "signal duration")
	f.Float64Var(&sampleRate, "sample-rate", 44100, "sample rate in Hz")
	f.Int64Var(&seed, "seed", 1, "noise seed")
	f.BoolVar(&write, "write", false, "write demo and filtered audio to the output directory")
	addFilterFlags(cmd)
	addAnalysisFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func demoSignal(gen *signal.Generator, kind string, samples int) (signal.Signal, error) {
	switch kind {
	case demoTwoTone:
		return gen.MultiTone(samples,
			signal.Tone{FreqHz: 200, Amplitude: 0.5},
			signal.Tone{FreqHz: 5000, Amplitude: 0.5},
		)
	case demoSweep:
		return gen.LogSweep(20, gen.SampleRate()/2*0.9, 0.8, samples)
	case demoNoise:
		return gen.WhiteNoise(0.5, samples)
	default:
		return signal.Signal{}, fmt.Errorf("demo: unknown signal %q (want %s, %s or %s)", kind, demoTwoTone, demoSweep, demoNoise)
	}
}
