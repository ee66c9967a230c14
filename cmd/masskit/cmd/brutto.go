package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-masskit/internal/config"
	"github.com/cwbudde/algo-masskit/ms/brutto"
	"github.com/cwbudde/algo-masskit/tabular"
)

var (
	bruttoElements []string
	bruttoMin      []int
	bruttoMax      []int
	bruttoOut      string
)

var bruttoCmd = &cobra.Command{
	Use:   "brutto",
	Short: "Generate a candidate formula table from element count ranges",
	Long: `Brutto enumerates every elemental composition inside the given
per-element count ranges and writes the candidates sorted by mass.
The table feeds the assign command.

Examples:
  masskit brutto --elements C,H,O --max 20,40,10
  masskit brutto --elements C,H,O,N --min 1,0,0,0 --max 30,60,15,5 --out candidates.csv`,
	RunE: runBrutto,
}

func init() {
	bruttoCmd.Flags().StringSliceVar(&bruttoElements, "elements", nil, "element symbols (default: configured elements)")
	bruttoCmd.Flags().IntSliceVar(&bruttoMin, "min", nil, "minimum atom count per element (default: all zero)")
	bruttoCmd.Flags().IntSliceVar(&bruttoMax, "max", nil, "maximum atom count per element")
	bruttoCmd.Flags().StringVar(&bruttoOut, "out", "", "write the table to this file instead of stdout")

	if err := bruttoCmd.MarkFlagRequired("max"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(bruttoCmd)
}

func runBrutto(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	elements := bruttoElements
	if len(elements) == 0 {
		elements = cfg.Elements
	}
	if len(bruttoMax) != len(elements) {
		return fmt.Errorf("need one --max per element (%d elements, %d max values)",
			len(elements), len(bruttoMax))
	}
	if len(bruttoMin) > 0 && len(bruttoMin) != len(elements) {
		return fmt.Errorf("need one --min per element (%d elements, %d min values)",
			len(elements), len(bruttoMin))
	}

	ranges := make([]brutto.Range, len(elements))
	for i := range elements {
		if len(bruttoMin) > 0 {
			ranges[i].Min = bruttoMin[i]
		}
		ranges[i].Max = bruttoMax[i]
	}

	candidates, err := brutto.Generate(brutto.Config{Elements: elements, Ranges: ranges})
	if err != nil {
		return err
	}

	if bruttoOut == "" {
		return tabular.WriteCandidates(os.Stdout, candidates, tabular.Options{})
	}
	if err := tabular.WriteCandidatesFile(bruttoOut, candidates, tabular.Options{}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d candidates written to %s\n", len(candidates), bruttoOut)
	return nil
}
