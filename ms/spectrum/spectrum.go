// Package spectrum provides formula-keyed peak sets and the set algebra
// used to compare assigned mass spectra: union with presence counting,
// presence thresholds, difference and Jaccard-Needham similarity.
package spectrum

import (
	"github.com/cwbudde/algo-masskit/ms/formula"
)

// Entry is a single peak. Assigned entries carry a molecular formula that
// acts as the entry's identity; unassigned entries have no identity and
// never participate in the set algebra.
type Entry struct {
	Formula  formula.Formula
	Assigned bool
	// Mass is the measured or calculated peak mass in Da.
	Mass float64
	// Intensity is the peak intensity in arbitrary units.
	Intensity float64
	// Presence counts in how many source spectra the formula occurred.
	// It is at least one.
	Presence int
}

// Set is an ordered peak collection with unique formulas across assigned
// entries. Reads may run concurrently; mutating calls (Add, Subtract,
// ResetToOne) require external serialization.
type Set struct {
	entries []Entry
	index   map[string]int
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// FromEntries builds a set by adding the entries in order. Assigned
// entries sharing a formula are merged by Add.
func FromEntries(entries []Entry) *Set {
	s := NewSet()
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts an entry. A presence below one is raised to one. Adding an
// assigned entry whose formula the set already contains merges the two:
// intensities sum, presence keeps the maximum and the first-seen mass is
// retained, so no two assigned entries ever share a formula.
func (s *Set) Add(e Entry) {
	if e.Presence < 1 {
		e.Presence = 1
	}
	if e.Assigned {
		key := e.Formula.Key()
		if i, ok := s.index[key]; ok {
			s.entries[i].Intensity += e.Intensity
			if e.Presence > s.entries[i].Presence {
				s.entries[i].Presence = e.Presence
			}
			return
		}
		s.index[key] = len(s.entries)
	}
	s.entries = append(s.entries, e)
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in insertion order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the assigned entry for the given formula.
func (s *Set) Get(f formula.Formula) (Entry, bool) {
	if i, ok := s.index[f.Key()]; ok {
		return s.entries[i], true
	}
	return Entry{}, false
}

// Contains reports whether the set has an assigned entry for the formula.
func (s *Set) Contains(f formula.Formula) bool {
	_, ok := s.index[f.Key()]
	return ok
}

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	out := &Set{
		entries: make([]Entry, len(s.entries)),
		index:   make(map[string]int, len(s.index)),
	}
	copy(out.entries, s.entries)
	for k, v := range s.index {
		out.index[k] = v
	}
	return out
}

// TotalIntensity returns the sum of all entry intensities.
func (s *Set) TotalIntensity() float64 {
	sum := 0.0
	for _, e := range s.entries {
		sum += e.Intensity
	}
	return sum
}

// Masses returns the entry masses in insertion order.
func (s *Set) Masses() []float64 {
	out := make([]float64, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Mass
	}
	return out
}

// Intensities returns the entry intensities in insertion order.
func (s *Set) Intensities() []float64 {
	out := make([]float64, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Intensity
	}
	return out
}

// Keys returns the formula keys of the assigned entries in insertion
// order.
func (s *Set) Keys() []string {
	out := make([]string, 0, len(s.index))
	for _, e := range s.entries {
		if e.Assigned {
			out = append(out, e.Formula.Key())
		}
	}
	return out
}
