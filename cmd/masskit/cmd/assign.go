package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-masskit/internal/config"
	"github.com/cwbudde/algo-masskit/ms/assign"
	"github.com/cwbudde/algo-masskit/tabular"
)

var (
	assignIn             string
	assignCandidates     string
	assignOut            string
	assignTolerance      float64
	assignPPM            bool
	assignReassign       bool
	assignDropUnassigned bool
	assignFromBrutto     bool
	assignElements       []string
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign candidate formulas to the peaks of a spectrum",
	Long: `Assign matches every peak of a spectrum against a candidate formula
table by nearest monoisotopic mass and writes the annotated spectrum.
With --from-brutto the formulas already present in the input's brutto
column are accepted instead of mass matching.

Examples:
  masskit assign --in peaks.csv --candidates candidates.csv --out assigned.csv
  masskit assign --in peaks.csv --candidates candidates.csv --tolerance 3 --ppm
  masskit assign --in annotated.csv --from-brutto --drop-unassigned`,
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().StringVar(&assignIn, "in", "", "input spectrum file")
	assignCmd.Flags().StringVar(&assignCandidates, "candidates", "", "candidate formula table")
	assignCmd.Flags().StringVar(&assignOut, "out", "", "write the annotated spectrum to this file instead of stdout")
	assignCmd.Flags().Float64Var(&assignTolerance, "tolerance", 0, "match tolerance (0 = configured default)")
	assignCmd.Flags().BoolVar(&assignPPM, "ppm", false, "interpret the tolerance in ppm of the peak mass")
	assignCmd.Flags().BoolVar(&assignReassign, "reassign", false, "replace existing assignments when a candidate matches")
	assignCmd.Flags().BoolVar(&assignDropUnassigned, "drop-unassigned", false, "discard peaks without a formula")
	assignCmd.Flags().BoolVar(&assignFromBrutto, "from-brutto", false, "accept the formulas in the input's brutto column")
	assignCmd.Flags().StringSliceVar(&assignElements, "elements", nil, "restrict candidates to these elements")

	if err := assignCmd.MarkFlagRequired("in"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	set, err := tabular.ReadSpectrumFile(assignIn, cfg.TabularOptions())
	if err != nil {
		return err
	}

	switch {
	case assignFromBrutto:
		set = assign.FromBruttoColumn(set)

	case assignCandidates != "":
		candidates, err := tabular.ReadCandidatesFile(assignCandidates, tabular.Options{})
		if err != nil {
			return err
		}
		tolerance := assignTolerance
		if tolerance == 0 {
			tolerance = cfg.Tolerance
		}
		ppm := assignPPM
		if !cmd.Flags().Changed("ppm") {
			ppm = cfg.TolerancePPM
		}
		set, err = assign.Assign(set, assign.Config{
			Candidates:     candidates,
			Elements:       assignElements,
			Tolerance:      tolerance,
			ToleranceIsPPM: ppm,
			Reassign:       assignReassign,
		})
		if err != nil {
			return err
		}

	default:
		return errors.New("either --candidates or --from-brutto is required")
	}

	if assignDropUnassigned {
		set = set.DropUnassigned()
	}

	if assignOut == "" {
		return tabular.WriteSpectrum(os.Stdout, set, cfg.TabularOptions())
	}
	if err := tabular.WriteSpectrumFile(assignOut, set, cfg.TabularOptions()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d peaks assigned, written to %s\n",
		len(set.Keys()), set.Len(), assignOut)
	return nil
}
