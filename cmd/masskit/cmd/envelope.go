package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-masskit/internal/config"
	"github.com/cwbudde/algo-masskit/ms/envelope"
	"github.com/cwbudde/algo-masskit/ms/formula"
	"github.com/cwbudde/algo-masskit/ms/isotope"
	"github.com/cwbudde/algo-masskit/render"
)

var (
	envelopeIterations int
	envelopeBinWidth   float64
	envelopeNormalize  bool
	envelopeAggregated int
	envelopePlot       string
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope <formula>",
	Short: "Compute the isotopic distribution of a molecular formula",
	Long: `Envelope enumerates the most probable isotopologues of a formula in
best-first order and prints the binned distribution. With --aggregated
it prints the nominal-mass pattern with isotopologues of equal nucleon
count merged.

Examples:
  masskit envelope C6H12O6
  masskit envelope --iterations 500 --bin-width 1e-3 C45H73N12O12S2
  masskit envelope --aggregated 10 C6H12O6
  masskit envelope --plot glucose.png C6H12O6`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvelope,
}

func init() {
	envelopeCmd.Flags().IntVar(&envelopeIterations, "iterations", 0, "isotopologues to enumerate (0 = configured default)")
	envelopeCmd.Flags().Float64Var(&envelopeBinWidth, "bin-width", 0, "mass bin width in Da (0 = configured default, negative disables binning)")
	envelopeCmd.Flags().BoolVar(&envelopeNormalize, "normalize", false, "rescale probabilities to sum to one")
	envelopeCmd.Flags().IntVar(&envelopeAggregated, "aggregated", 0, "print the aggregated pattern with up to N nominal-mass peaks instead")
	envelopeCmd.Flags().StringVar(&envelopePlot, "plot", "", "save a stem plot of the distribution to this file")

	rootCmd.AddCommand(envelopeCmd)
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f, err := formula.Parse(args[0])
	if err != nil {
		return err
	}

	table := isotope.Default()

	if envelopeAggregated > 0 {
		pattern, err := envelope.AggregatedPattern(f, table, envelopeAggregated)
		if err != nil {
			return err
		}
		return printAggregated(cmd, pattern)
	}

	iterations := envelopeIterations
	if iterations <= 0 {
		iterations = cfg.MaxIterations
	}
	binWidth := envelopeBinWidth
	if binWidth == 0 {
		binWidth = cfg.BinWidth
	}

	gen := envelope.New(envelope.Config{Table: table, BinWidth: binWidth})
	dist, err := gen.Generate(f, iterations)
	if err != nil {
		return err
	}
	if envelopeNormalize {
		dist = dist.Normalized()
	}

	if err := printDistribution(cmd, dist); err != nil {
		return err
	}

	if envelopePlot != "" {
		if err := render.SaveDistribution(dist, f.String(), envelopePlot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "plot saved to %s\n", envelopePlot)
	}
	return nil
}

func printDistribution(cmd *cobra.Command, dist envelope.Distribution) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Mass [Da]\tProbability\n")
	fmt.Fprintf(tw, "---------\t-----------\n")
	for _, p := range dist {
		fmt.Fprintf(tw, "%.6f\t%.6g\n", p.Mass, p.Probability)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\npeaks: %d  total probability: %.6f\n",
		len(dist), dist.TotalProbability())
	return nil
}

func printAggregated(cmd *cobra.Command, pattern []float64) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tProbability\n")
	fmt.Fprintf(tw, "----\t-----------\n")
	for k, p := range pattern {
		fmt.Fprintf(tw, "A+%d\t%.6g\n", k, p)
	}
	return tw.Flush()
}
