package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-firlab/dsp/window"
)

func newWindowsCmd(_ *app) *cobra.Command {
	var (
		size     int
		periodic bool
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "windows [name ...]",
		Short: "Print spectral properties of the design windows",
		Long: `windows measures each window's spectrum numerically and prints coherent
gain, equivalent noise bandwidth, main lobe widths, highest sidelobe and
scallop loss. Without names every supported window is shown.`,
		Example: `  firlab windows
  firlab windows --size 4096 hann blackman
  firlab windows --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, k := range window.Kinds() {
					fmt.Fprintln(out, k)
				}
				return nil
			}

			kinds := window.Kinds()
			if len(args) > 0 {
				kinds = kinds[:0:0]
				for _, name := range args {
					k, err := window.ParseKind(name)
					if err != nil {
						return fmt.Errorf("windows: %w (use --list to see available)", err)
					}
					kinds = append(kinds, k)
				}
			}

			var opts []window.Option
			if periodic {
				opts = append(opts, window.WithPeriodic())
			}
			return printWindows(cmd, kinds, size, opts)
		},
	}

	cmd.Flags().IntVar(&size, "size", 1024, "window length in samples")
	cmd.Flags().BoolVar(&periodic, "periodic", false, "use the periodic (DFT-even) form instead of the symmetric one")
	cmd.Flags().BoolVar(&list, "list", false, "list available window names")
	return cmd
}

func printWindows(cmd *cobra.Command, kinds []window.Kind, size int, opts []window.Option) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\t1st Min [bins]\tScallop [dB]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\t-------------\t--------------\t------------\n")

	for _, k := range kinds {
		coeffs, err := window.Generate(k, size, opts...)
		if err != nil {
			return fmt.Errorf("windows: %w", err)
		}
		a := window.Analyze(coeffs)
		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\n",
			window.Info(k).Name,
			size,
			a.CoherentGain,
			a.ENBW,
			a.Bandwidth3dB,
			a.HighestSidelobedB,
			a.FirstMinimumBins,
			a.ScallopLossdB,
		)
	}
	return tw.Flush()
}
