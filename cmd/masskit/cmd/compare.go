package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-masskit/internal/config"
	"github.com/cwbudde/algo-masskit/measure/similarity"
	"github.com/cwbudde/algo-masskit/ms/spectrum"
	"github.com/cwbudde/algo-masskit/render"
	"github.com/cwbudde/algo-masskit/speclib"
	"github.com/cwbudde/algo-masskit/tabular"
)

var (
	compareMode        string
	compareThreshold   int
	compareStripCommon bool
	comparePlot        string
	compareDB          string
)

var compareCmd = &cobra.Command{
	Use:   "compare <spectrum>...",
	Short: "Compare assigned spectra by formula overlap",
	Long: `Compare loads two or more assigned spectra, reports their union with
presence counts and prints a pairwise similarity matrix. Unassigned
peaks are dropped before scoring.

Examples:
  masskit compare a.csv b.csv c.csv
  masskit compare --mode cosine --plot matrix.png a.csv b.csv
  masskit compare --strip-common --db library.sqlite a.csv b.csv c.csv`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareMode, "mode", "jaccard", "similarity mode (jaccard, cosine, tanimoto)")
	compareCmd.Flags().IntVar(&compareThreshold, "threshold", 0, "report only formulas present in more than this many spectra")
	compareCmd.Flags().BoolVar(&compareStripCommon, "strip-common", false, "remove formulas shared by all spectra before scoring")
	compareCmd.Flags().StringVar(&comparePlot, "plot", "", "save a heat map of the matrix to this file")
	compareCmd.Flags().StringVar(&compareDB, "db", "", "export the spectra and their union to this SQLite library")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mode, err := similarity.ParseMode(compareMode)
	if err != nil {
		return err
	}

	names := make([]string, len(args))
	sets := make([]*spectrum.Set, len(args))
	for i, path := range args {
		s, err := tabular.ReadSpectrumFile(path, cfg.TabularOptions())
		if err != nil {
			return err
		}
		names[i] = setName(path)
		sets[i] = s.DropUnassigned()
	}

	union := spectrum.Union(sets...)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "union of %d spectra: %d formulas\n", len(sets), union.Len())
	if compareThreshold > 0 {
		fmt.Fprintf(out, "present in more than %d spectra: %d\n",
			compareThreshold, union.PresenceAbove(compareThreshold).Len())
	} else {
		for k := 1; k < len(sets); k++ {
			fmt.Fprintf(out, "present in more than %d spectra: %d\n",
				k, union.PresenceAbove(k).Len())
		}
	}

	if compareDB != "" {
		if err := exportLibrary(compareDB, names, sets, union); err != nil {
			return err
		}
		fmt.Fprintf(out, "library written to %s\n", compareDB)
	}

	if compareStripCommon {
		common := union.PresenceAbove(len(sets) - 1)
		for _, s := range sets {
			s.Subtract(common)
		}
	}

	collection, err := similarity.NewCollection(names, sets)
	if err != nil {
		return err
	}
	matrix, err := similarity.Matrix(collection, mode)
	if err != nil {
		return err
	}

	if err := printMatrix(cmd, names, matrix, mode); err != nil {
		return err
	}

	if comparePlot != "" {
		title := fmt.Sprintf("similarity (%s)", mode)
		if err := render.SaveMatrix(matrix, names, title, comparePlot); err != nil {
			return err
		}
		fmt.Fprintf(out, "plot saved to %s\n", comparePlot)
	}
	return nil
}

// setName derives a display name from a spectrum file path.
func setName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printMatrix(cmd *cobra.Command, names []string, m [][]float64, mode similarity.Mode) error {
	fmt.Fprintf(cmd.OutOrStdout(), "\nsimilarity (%s):\n", mode)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(names, "\t"))
	for i, row := range m {
		fmt.Fprintf(tw, "%s", names[i])
		for _, v := range row {
			fmt.Fprintf(tw, "\t%.3f", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func exportLibrary(path string, names []string, sets []*spectrum.Set, union *spectrum.Set) error {
	w, err := speclib.NewWriter(path)
	if err != nil {
		return err
	}
	for i, s := range sets {
		if err := w.WriteSet(names[i], s); err != nil {
			_ = w.Close()
			return err
		}
	}
	if err := w.WriteSet("union", union); err != nil {
		_ = w.Close()
		return err
	}
	return w.Finalize()
}
