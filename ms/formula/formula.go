// Package formula provides immutable molecular formulas with a canonical
// Hill-notation string form used as the identity key throughout the module.
package formula

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormula indicates a formula string or symbol that cannot be parsed.
	ErrInvalidFormula = errors.New("formula: invalid formula")
	// ErrNegativeCount indicates a negative element count.
	ErrNegativeCount = errors.New("formula: negative element count")
)

// maxCount bounds a single element count during parsing.
const maxCount = 1 << 24

// Formula is an immutable elemental composition such as C6H12O6.
// The zero value is the empty formula.
type Formula struct {
	elems []elemCount
	key   string
}

type elemCount struct {
	symbol string
	count  int
}

// New builds a formula from element counts. Zero counts are dropped and
// negative counts are rejected. Symbols must be an uppercase letter
// followed by zero or more lowercase letters.
func New(counts map[string]int) (Formula, error) {
	elems := make([]elemCount, 0, len(counts))
	for sym, n := range counts {
		if n < 0 {
			return Formula{}, fmt.Errorf("%w: %s=%d", ErrNegativeCount, sym, n)
		}
		if n == 0 {
			continue
		}
		if !ValidSymbol(sym) {
			return Formula{}, fmt.Errorf("%w: bad symbol %q", ErrInvalidFormula, sym)
		}
		elems = append(elems, elemCount{symbol: sym, count: n})
	}
	sortHill(elems)
	return Formula{elems: elems, key: hillString(elems)}, nil
}

// Parse reads a formula string such as "C6H12O6" or "CHCl3". A missing
// count means one atom. Repeated symbols accumulate, so "CH3CH3" equals
// "C2H6".
func Parse(s string) (Formula, error) {
	s = strings.TrimSpace(s)
	counts := make(map[string]int)
	i := 0
	for i < len(s) {
		if s[i] < 'A' || s[i] > 'Z' {
			return Formula{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidFormula, s, i)
		}
		j := i + 1
		for j < len(s) && s[j] >= 'a' && s[j] <= 'z' {
			j++
		}
		sym := s[i:j]
		i = j
		n := 1
		if i < len(s) && s[i] >= '0' && s[i] <= '9' {
			n = 0
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				n = n*10 + int(s[i]-'0')
				if n > maxCount {
					return Formula{}, fmt.Errorf("%w: count too large in %q", ErrInvalidFormula, s)
				}
				i++
			}
		}
		counts[sym] += n
	}
	return New(counts)
}

// MustParse is like Parse but panics on error. It is intended for
// statically known formulas.
func MustParse(s string) Formula {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Count returns the number of atoms of the given element, zero if absent.
func (f Formula) Count(symbol string) int {
	for _, e := range f.elems {
		if e.symbol == symbol {
			return e.count
		}
	}
	return 0
}

// Elements returns the element symbols in Hill order.
func (f Formula) Elements() []string {
	out := make([]string, len(f.elems))
	for i, e := range f.elems {
		out[i] = e.symbol
	}
	return out
}

// Counts returns a fresh symbol-to-count map.
func (f Formula) Counts() map[string]int {
	out := make(map[string]int, len(f.elems))
	for _, e := range f.elems {
		out[e.symbol] = e.count
	}
	return out
}

// TotalAtoms returns the total number of atoms.
func (f Formula) TotalAtoms() int {
	total := 0
	for _, e := range f.elems {
		total += e.count
	}
	return total
}

// IsEmpty reports whether the formula contains no atoms.
func (f Formula) IsEmpty() bool {
	return len(f.elems) == 0
}

// Key returns the canonical Hill-notation form: carbon first, then
// hydrogen, then the remaining elements alphabetically; without carbon
// all elements sort alphabetically. Formulas with equal composition
// always produce the same key, so it is safe to use as a map key.
func (f Formula) Key() string {
	return f.key
}

// Equal reports whether two formulas have the same composition.
func (f Formula) Equal(other Formula) bool {
	return f.key == other.key
}

func (f Formula) String() string {
	return f.key
}

// ValidSymbol reports whether sym is letter-cased like an element
// symbol, an upper-case letter followed by lower-case letters.
func ValidSymbol(sym string) bool {
	if len(sym) == 0 || sym[0] < 'A' || sym[0] > 'Z' {
		return false
	}
	for i := 1; i < len(sym); i++ {
		if sym[i] < 'a' || sym[i] > 'z' {
			return false
		}
	}
	return true
}

func sortHill(elems []elemCount) {
	hasCarbon := false
	for _, e := range elems {
		if e.symbol == "C" {
			hasCarbon = true
			break
		}
	}
	sort.Slice(elems, func(i, j int) bool {
		a, b := elems[i].symbol, elems[j].symbol
		if hasCarbon {
			ra, rb := hillRank(a), hillRank(b)
			if ra != rb {
				return ra < rb
			}
		}
		return a < b
	})
}

func hillRank(sym string) int {
	switch sym {
	case "C":
		return 0
	case "H":
		return 1
	default:
		return 2
	}
}

func hillString(elems []elemCount) string {
	if len(elems) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range elems {
		b.WriteString(e.symbol)
		if e.count != 1 {
			b.WriteString(strconv.Itoa(e.count))
		}
	}
	return b.String()
}
