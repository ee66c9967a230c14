package envelope

import (
	"errors"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-masskit/ms/isotope"
)

var (
	// ErrEmptyFormula indicates a formula with no atoms.
	ErrEmptyFormula = errors.New("envelope: empty formula")
	// ErrInvalidMaxPeaks indicates a non-positive aggregated peak count.
	ErrInvalidMaxPeaks = errors.New("envelope: max peaks must be positive")
)

// DefaultBinWidth is the mass gap in Da below which adjacent points are
// merged after enumeration. It models finite instrument resolution and
// sits well below isotopologue fine structure.
const DefaultBinWidth = 1e-4

// Point is a single isotopologue peak.
type Point struct {
	// Mass in Da.
	Mass float64
	// Probability of observing this isotopologue. Probabilities of a
	// truncated distribution sum to less than one and are never
	// renormalized implicitly.
	Probability float64
}

// Distribution is an isotopic distribution ordered by ascending mass.
type Distribution []Point

// Config holds distribution generation parameters.
type Config struct {
	// Table supplies isotopic masses and abundances. Nil selects the
	// bundled default table.
	Table *isotope.Table
	// BinWidth is the post-enumeration merge width in Da. Zero selects
	// DefaultBinWidth, a negative value disables merging.
	BinWidth float64
	// MaxFrontier caps the number of queued candidate states during the
	// best-first search. Zero means unbounded. When the frontier is full
	// the least probable queued state is evicted, trading completeness
	// for bounded memory.
	MaxFrontier int
}

// TotalProbability returns the sum of all point probabilities. For a
// truncated distribution this is the captured fraction, at most one.
func (d Distribution) TotalProbability() float64 {
	sum := 0.0
	for _, p := range d {
		sum += p.Probability
	}
	return sum
}

// BasePeak returns the most probable point. The second return value is
// false for an empty distribution.
func (d Distribution) BasePeak() (Point, bool) {
	if len(d) == 0 {
		return Point{}, false
	}
	best := d[0]
	for _, p := range d[1:] {
		if p.Probability > best.Probability {
			best = p
		}
	}
	return best, true
}

// Masses returns the point masses as a fresh slice.
func (d Distribution) Masses() []float64 {
	out := make([]float64, len(d))
	for i, p := range d {
		out[i] = p.Mass
	}
	return out
}

// Probabilities returns the point probabilities as a fresh slice.
func (d Distribution) Probabilities() []float64 {
	out := make([]float64, len(d))
	for i, p := range d {
		out[i] = p.Probability
	}
	return out
}

// Normalized returns a copy scaled so probabilities sum to one. This is
// the only place the package renormalizes, and only on request. An empty
// or all-zero distribution is returned unchanged.
func (d Distribution) Normalized() Distribution {
	total := d.TotalProbability()
	if len(d) == 0 || total == 0 {
		out := make(Distribution, len(d))
		copy(out, d)
		return out
	}
	probs := d.Probabilities()
	vecmath.ScaleBlock(probs, probs, 1/total)
	out := make(Distribution, len(d))
	for i, p := range d {
		out[i] = Point{Mass: p.Mass, Probability: probs[i]}
	}
	return out
}

func sortByMass(d Distribution) {
	sort.Slice(d, func(i, j int) bool { return d[i].Mass < d[j].Mass })
}
