// Package assign attaches candidate formulas to measured peaks by
// nearest monoisotopic mass within a tolerance.
package assign

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-masskit/ms/brutto"
	"github.com/cwbudde/algo-masskit/ms/spectrum"
)

var (
	// ErrNoCandidates indicates an empty candidate table.
	ErrNoCandidates = errors.New("assign: empty candidate table")
	// ErrInvalidTolerance indicates a non-positive tolerance.
	ErrInvalidTolerance = errors.New("assign: tolerance must be positive")
)

// Config holds assignment parameters.
type Config struct {
	// Candidates is the formula table to match against, ideally sorted
	// by ascending mass. An unsorted table is sorted on a copy first.
	Candidates []brutto.Candidate
	// Elements optionally restricts the permitted elements. Candidates
	// containing any other element are ignored.
	Elements []string
	// Tolerance is the maximum |candidate mass - peak mass| distance,
	// inclusive. In Da, or in ppm of the peak mass when ToleranceIsPPM
	// is set.
	Tolerance      float64
	ToleranceIsPPM bool
	// Reassign replaces existing assignments when a candidate matches.
	// Otherwise assigned entries pass through untouched.
	Reassign bool
}

// Assign matches every peak of s against the candidate table and returns
// a new set. A matched entry carries the nearest candidate's formula and
// keeps its measured mass, intensity and presence; ties between two
// straddling candidates resolve to the lighter one. Peaks without a
// candidate in tolerance stay unassigned. Two peaks matching the same
// candidate merge by the set's formula-identity rule. The source set is
// not modified.
func Assign(s *spectrum.Set, cfg Config) (*spectrum.Set, error) {
	if len(cfg.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if cfg.Tolerance <= 0 || math.IsNaN(cfg.Tolerance) {
		return nil, ErrInvalidTolerance
	}

	cands := permittedCandidates(cfg.Candidates, cfg.Elements)
	if len(cands) == 0 {
		return nil, ErrNoCandidates
	}
	if !sort.SliceIsSorted(cands, func(i, j int) bool { return cands[i].Mass < cands[j].Mass }) {
		sorted := make([]brutto.Candidate, len(cands))
		copy(sorted, cands)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Mass < sorted[j].Mass })
		cands = sorted
	}

	out := spectrum.NewSet()
	for _, e := range s.Entries() {
		if e.Assigned && !cfg.Reassign {
			out.Add(e)
			continue
		}
		tol := cfg.Tolerance
		if cfg.ToleranceIsPPM {
			tol = cfg.Tolerance * e.Mass * 1e-6
		}
		if c, ok := nearest(cands, e.Mass, tol); ok {
			e.Formula = c.Formula
			e.Assigned = true
		}
		out.Add(e)
	}
	return out, nil
}

// FromBruttoColumn returns a new set in which every entry that already
// carries a formula is marked assigned. Used when the source table
// contained formula text instead of requiring mass matching.
func FromBruttoColumn(s *spectrum.Set) *spectrum.Set {
	out := spectrum.NewSet()
	for _, e := range s.Entries() {
		if !e.Formula.IsEmpty() {
			e.Assigned = true
		}
		out.Add(e)
	}
	return out
}

func permittedCandidates(cands []brutto.Candidate, elements []string) []brutto.Candidate {
	if len(elements) == 0 {
		return cands
	}
	allowed := make(map[string]struct{}, len(elements))
	for _, sym := range elements {
		allowed[sym] = struct{}{}
	}
	out := make([]brutto.Candidate, 0, len(cands))
	for _, c := range cands {
		if formulaPermitted(c, allowed) {
			out = append(out, c)
		}
	}
	return out
}

func formulaPermitted(c brutto.Candidate, allowed map[string]struct{}) bool {
	for _, sym := range c.Formula.Elements() {
		if _, ok := allowed[sym]; !ok {
			return false
		}
	}
	return true
}

// nearest returns the candidate closest to mass if within tol. The
// candidate slice must be sorted by ascending mass.
func nearest(cands []brutto.Candidate, mass, tol float64) (brutto.Candidate, bool) {
	i := sort.Search(len(cands), func(i int) bool { return cands[i].Mass >= mass })
	best, bestDiff := brutto.Candidate{}, math.Inf(1)
	if i < len(cands) {
		best, bestDiff = cands[i], cands[i].Mass-mass
	}
	if i > 0 {
		if diff := mass - cands[i-1].Mass; diff <= bestDiff {
			best, bestDiff = cands[i-1], diff
		}
	}
	if bestDiff <= tol {
		return best, true
	}
	return brutto.Candidate{}, false
}
