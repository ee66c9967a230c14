package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-masskit/ms/isotope"
)

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List the bundled isotope data",
	Long: `Elements prints every element of the bundled isotope table with the
masses and natural abundances of its isotopes.`,
	Args: cobra.NoArgs,
	RunE: runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)
}

func runElements(cmd *cobra.Command, args []string) error {
	table := isotope.Default()
	fmt.Fprintf(cmd.OutOrStdout(), "isotope data: %s\n\n", table.Version())

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Element\tMass [Da]\tAbundance\n")
	fmt.Fprintf(tw, "-------\t---------\t---------\n")
	for _, sym := range table.Elements() {
		isotopes, err := table.Isotopes(sym)
		if err != nil {
			return err
		}
		for i, iso := range isotopes {
			label := sym
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(tw, "%s\t%.6f\t%.6g\n", label, iso.Mass, iso.Abundance)
		}
	}
	return tw.Flush()
}
