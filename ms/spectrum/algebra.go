package spectrum

// Union merges the assigned entries of all operands into a new set. For
// every formula found in any operand the result carries the summed
// intensity and a presence equal to the number of distinct operands
// containing that formula; the operands' own presence values do not
// accumulate. Unassigned entries are not carried over. Nil operands are
// ignored; no operands yield an empty set. Entry order is first seen
// across operands.
func Union(operands ...*Set) *Set {
	out := NewSet()
	counts := make(map[string]int)
	for _, op := range operands {
		if op == nil {
			continue
		}
		for _, e := range op.entries {
			if !e.Assigned {
				continue
			}
			key := e.Formula.Key()
			if i, ok := out.index[key]; ok {
				out.entries[i].Intensity += e.Intensity
			} else {
				ne := e
				ne.Presence = 1
				out.index[key] = len(out.entries)
				out.entries = append(out.entries, ne)
			}
			counts[key]++
		}
	}
	for key, i := range out.index {
		out.entries[i].Presence = counts[key]
	}
	return out
}

// Union returns the union of the receiver with the given sets.
func (s *Set) Union(others ...*Set) *Set {
	operands := make([]*Set, 0, len(others)+1)
	operands = append(operands, s)
	operands = append(operands, others...)
	return Union(operands...)
}

// ResetToOne sets every entry's presence to one, in place, so the set
// counts as a single source in a later union. Calling it on a set whose
// presences are already one has no effect. Returns the receiver.
func (s *Set) ResetToOne() *Set {
	for i := range s.entries {
		s.entries[i].Presence = 1
	}
	return s
}

// PresenceAbove returns a new set with the entries whose presence is
// strictly greater than k, copied unchanged.
func (s *Set) PresenceAbove(k int) *Set {
	out := NewSet()
	for _, e := range s.entries {
		if e.Presence > k {
			out.Add(e)
		}
	}
	return out
}

// Subtract removes from the receiver, in place, every assigned entry
// whose formula occurs in other. Unassigned entries are kept. The other
// set is not modified. Returns the receiver.
func (s *Set) Subtract(other *Set) *Set {
	if other == nil || len(other.index) == 0 {
		return s
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Assigned && other.Contains(e.Formula) {
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.index = make(map[string]int, len(kept))
	for i, e := range s.entries {
		if e.Assigned {
			s.index[e.Formula.Key()] = i
		}
	}
	return s
}

// JaccardNeedham returns the Jaccard-Needham similarity of the assigned
// formula sets: shared keys over all keys. Two empty sets score zero.
func (s *Set) JaccardNeedham(other *Set) float64 {
	if other == nil {
		other = NewSet()
	}
	shared := 0
	for key := range s.index {
		if _, ok := other.index[key]; ok {
			shared++
		}
	}
	union := len(s.index) + len(other.index) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// DropUnassigned returns a new set containing only the assigned entries,
// copied unchanged.
func (s *Set) DropUnassigned() *Set {
	out := NewSet()
	for _, e := range s.entries {
		if e.Assigned {
			out.Add(e)
		}
	}
	return out
}
