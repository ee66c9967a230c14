// Command masskit computes isotopic distributions, generates formula
// candidates, assigns candidates to measured peaks and compares
// assigned spectra.
//
// Usage:
//
//	masskit envelope C6H12O6
//	masskit brutto --elements C,H,O --max 10,20,5 --out candidates.csv
//	masskit assign --in peaks.csv --candidates candidates.csv --out assigned.csv
//	masskit compare --mode cosine a.csv b.csv c.csv
//	masskit elements
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-masskit/cmd/masskit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
