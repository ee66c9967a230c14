// Package brutto generates candidate formula tables: every elemental
// composition inside per-element count ranges, with monoisotopic masses,
// sorted for nearest-mass lookup.
package brutto

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-masskit/ms/formula"
	"github.com/cwbudde/algo-masskit/ms/isotope"
)

var (
	// ErrInvalidRange indicates a negative minimum or a maximum below the minimum.
	ErrInvalidRange = errors.New("brutto: invalid element range")
	// ErrLengthMismatch indicates element and range slices of different lengths.
	ErrLengthMismatch = errors.New("brutto: elements and ranges differ in length")
	// ErrTooManyCandidates indicates a range product beyond the configured cap.
	ErrTooManyCandidates = errors.New("brutto: candidate count exceeds limit")
)

// DefaultMaxCandidates caps the generated table size unless overridden.
const DefaultMaxCandidates = 5_000_000

// Range bounds an element's atom count, both ends inclusive.
type Range struct {
	Min int
	Max int
}

// Candidate pairs a formula with its monoisotopic mass.
type Candidate struct {
	Formula formula.Formula
	Mass    float64
}

// Config holds candidate generation parameters. Elements and Ranges are
// parallel slices.
type Config struct {
	Elements []string
	Ranges   []Range
	// Table supplies principal isotope masses. Nil selects the bundled
	// default table.
	Table *isotope.Table
	// MaxCandidates rejects range products beyond this size. Zero
	// selects DefaultMaxCandidates.
	MaxCandidates int
}

// Generate enumerates the Cartesian product of the per-element count
// ranges and returns the candidates sorted by ascending mass. The
// all-zero composition is skipped. An empty element list yields an empty
// table.
func Generate(cfg Config) ([]Candidate, error) {
	if len(cfg.Elements) != len(cfg.Ranges) {
		return nil, ErrLengthMismatch
	}
	if len(cfg.Elements) == 0 {
		return nil, nil
	}
	table := cfg.Table
	if table == nil {
		table = isotope.Default()
	}
	limit := cfg.MaxCandidates
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}

	masses := make([]float64, len(cfg.Elements))
	total := 1
	for i, sym := range cfg.Elements {
		r := cfg.Ranges[i]
		if r.Min < 0 || r.Max < r.Min {
			return nil, fmt.Errorf("%w: %s min %d max %d", ErrInvalidRange, sym, r.Min, r.Max)
		}
		iso, err := table.Principal(sym)
		if err != nil {
			return nil, fmt.Errorf("brutto: %w", err)
		}
		masses[i] = iso.Mass
		span := r.Max - r.Min + 1
		if total > limit/span {
			return nil, fmt.Errorf("%w: product of ranges exceeds %d", ErrTooManyCandidates, limit)
		}
		total *= span
	}

	out := make([]Candidate, 0, total)
	counts := make([]int, len(cfg.Elements))
	for i := range counts {
		counts[i] = cfg.Ranges[i].Min
	}
	for {
		c, ok, err := makeCandidate(cfg.Elements, counts, masses)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, c)
		}
		if !advance(counts, cfg.Ranges) {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Mass != out[j].Mass {
			return out[i].Mass < out[j].Mass
		}
		return out[i].Formula.Key() < out[j].Formula.Key()
	})
	return out, nil
}

func makeCandidate(elements []string, counts []int, masses []float64) (Candidate, bool, error) {
	m := make(map[string]int, len(elements))
	mass := 0.0
	atoms := 0
	for i, sym := range elements {
		if counts[i] == 0 {
			continue
		}
		m[sym] = counts[i]
		mass += float64(counts[i]) * masses[i]
		atoms += counts[i]
	}
	if atoms == 0 {
		return Candidate{}, false, nil
	}
	f, err := formula.New(m)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("brutto: %w", err)
	}
	return Candidate{Formula: f, Mass: mass}, true, nil
}

// advance steps the count odometer; false once all positions wrapped.
func advance(counts []int, ranges []Range) bool {
	for i := len(counts) - 1; i >= 0; i-- {
		if counts[i] < ranges[i].Max {
			counts[i]++
			return true
		}
		counts[i] = ranges[i].Min
	}
	return false
}
