// Package isotope provides isotopic mass and abundance tables. A Table
// maps element symbols to their naturally occurring isotopes, ordered by
// decreasing abundance, and is injected into every computation that needs
// atomic masses so datasets can be swapped or restricted.
package isotope

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-masskit/ms/formula"
)

var (
	// ErrUnknownElement indicates a lookup for an element the table does not carry.
	ErrUnknownElement = errors.New("isotope: unknown element")
	// ErrBadSymbol indicates an element symbol that is not letter-cased like Fe or Cl.
	ErrBadSymbol = errors.New("isotope: invalid element symbol")
	// ErrNoIsotopes indicates an element entry with an empty isotope list.
	ErrNoIsotopes = errors.New("isotope: element has no isotopes")
	// ErrBadMass indicates a non-positive or non-finite isotope mass.
	ErrBadMass = errors.New("isotope: mass must be positive and finite")
	// ErrBadAbundance indicates an abundance outside (0, 1].
	ErrBadAbundance = errors.New("isotope: abundance out of range")
	// ErrAbundanceSum indicates element abundances that do not sum to one.
	ErrAbundanceSum = errors.New("isotope: abundances do not sum to one")
)

// abundanceSumTol is the permitted deviation of an element's total
// abundance from exactly one.
const abundanceSumTol = 1e-3

// Isotope is a single isotope of an element.
type Isotope struct {
	// Mass is the atomic mass in unified atomic mass units (Da).
	Mass float64
	// Abundance is the natural relative abundance in (0, 1].
	Abundance float64
}

// Table is an immutable set of per-element isotope lists. Isotopes of an
// element are ordered by decreasing abundance, ties broken by increasing
// mass, so the first entry is always the principal isotope.
type Table struct {
	version string
	elems   map[string][]Isotope
	order   []string
}

// NewTable validates and indexes the given per-element isotope lists.
// The input map is copied; each list is re-sorted by decreasing
// abundance. Every element must have at least one isotope, masses must
// be positive and finite, abundances must lie in (0, 1] and sum to one
// within a tolerance of 1e-3.
func NewTable(version string, data map[string][]Isotope) (*Table, error) {
	elems := make(map[string][]Isotope, len(data))
	order := make([]string, 0, len(data))
	for sym, list := range data {
		if !formula.ValidSymbol(sym) {
			return nil, fmt.Errorf("%w: %q", ErrBadSymbol, sym)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoIsotopes, sym)
		}
		sum := 0.0
		isotopes := make([]Isotope, len(list))
		copy(isotopes, list)
		for _, iso := range isotopes {
			if iso.Mass <= 0 || math.IsInf(iso.Mass, 0) || math.IsNaN(iso.Mass) {
				return nil, fmt.Errorf("%w: %s mass %v", ErrBadMass, sym, iso.Mass)
			}
			if iso.Abundance <= 0 || iso.Abundance > 1 || math.IsNaN(iso.Abundance) {
				return nil, fmt.Errorf("%w: %s abundance %v", ErrBadAbundance, sym, iso.Abundance)
			}
			sum += iso.Abundance
		}
		if math.Abs(sum-1) > abundanceSumTol {
			return nil, fmt.Errorf("%w: %s sums to %v", ErrAbundanceSum, sym, sum)
		}
		sort.SliceStable(isotopes, func(i, j int) bool {
			if isotopes[i].Abundance != isotopes[j].Abundance {
				return isotopes[i].Abundance > isotopes[j].Abundance
			}
			return isotopes[i].Mass < isotopes[j].Mass
		})
		elems[sym] = isotopes
		order = append(order, sym)
	}
	sort.Strings(order)
	return &Table{version: version, elems: elems, order: order}, nil
}

// Version identifies the dataset the table was built from.
func (t *Table) Version() string {
	return t.version
}

// Elements returns the element symbols the table carries, sorted.
func (t *Table) Elements() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Has reports whether the table carries the given element.
func (t *Table) Has(symbol string) bool {
	_, ok := t.elems[symbol]
	return ok
}

// Isotopes returns the isotopes of an element by decreasing abundance.
func (t *Table) Isotopes(symbol string) ([]Isotope, error) {
	list, ok := t.elems[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownElement, symbol)
	}
	out := make([]Isotope, len(list))
	copy(out, list)
	return out, nil
}

// Principal returns the most abundant isotope of an element.
func (t *Table) Principal(symbol string) (Isotope, error) {
	list, ok := t.elems[symbol]
	if !ok {
		return Isotope{}, fmt.Errorf("%w: %s", ErrUnknownElement, symbol)
	}
	return list[0], nil
}

// MonoisotopicMass returns the mass of the formula with every atom on
// its element's principal isotope.
func (t *Table) MonoisotopicMass(f formula.Formula) (float64, error) {
	mass := 0.0
	for _, sym := range f.Elements() {
		iso, err := t.Principal(sym)
		if err != nil {
			return 0, err
		}
		mass += float64(f.Count(sym)) * iso.Mass
	}
	return mass, nil
}
