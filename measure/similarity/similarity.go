// Package similarity computes pairwise similarity matrices over
// collections of assigned spectra.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"

	"github.com/cwbudde/algo-masskit/ms/spectrum"
	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrLengthMismatch indicates that names and sets differ in length.
	ErrLengthMismatch = errors.New("similarity: names and sets must have the same length")
	// ErrUnknownMode indicates an unsupported similarity mode.
	ErrUnknownMode = errors.New("similarity: unknown mode")
)

// Mode identifies a pairwise similarity measure.
type Mode int

const (
	// ModeJaccard scores shared assigned formulas over the union size.
	ModeJaccard Mode = iota
	// ModeCosine scores the angle between aligned intensity vectors.
	ModeCosine
	// ModeTanimoto scores the Tanimoto coefficient of aligned
	// intensity vectors.
	ModeTanimoto
)

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeJaccard:
		return "jaccard"
	case ModeCosine:
		return "cosine"
	case ModeTanimoto:
		return "tanimoto"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jaccard":
		return ModeJaccard, nil
	case "cosine":
		return ModeCosine, nil
	case "tanimoto":
		return ModeTanimoto, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Collection pairs a list of spectra with display names.
type Collection struct {
	Names []string
	Sets  []*spectrum.Set
}

// NewCollection builds a collection after checking that names and sets
// line up.
func NewCollection(names []string, sets []*spectrum.Set) (Collection, error) {
	if len(names) != len(sets) {
		return Collection{}, ErrLengthMismatch
	}
	return Collection{Names: names, Sets: sets}, nil
}

// Len returns the number of spectra in the collection.
func (c Collection) Len() int { return len(c.Sets) }

// Matrix computes the symmetric pairwise similarity matrix of the
// collection. The diagonal is fixed at 1. Pairs are scored concurrently;
// the sets are only read.
func Matrix(c Collection, mode Mode) ([][]float64, error) {
	if mode < ModeJaccard || mode > ModeTanimoto {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	n := len(c.Sets)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.Go(func() error {
				v := pairScore(c.Sets[i], c.Sets[j], mode)
				m[i][j], m[j][i] = v, v
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}

// pairScore computes a single off-diagonal cell. Empty alignments and
// zero-magnitude vectors score 0.
func pairScore(a, b *spectrum.Set, mode Mode) float64 {
	if mode == ModeJaccard {
		return a.JaccardNeedham(b)
	}

	keys := unionKeys(a, b)
	if len(keys) == 0 {
		return 0
	}

	va, vb, prod, buf := getScratch(len(keys))
	defer putScratch(buf)

	fillIntensities(va, intensityByKey(a), keys)
	fillIntensities(vb, intensityByKey(b), keys)

	ab := dot(prod, va, vb)

	switch mode {
	case ModeCosine:
		norm := math.Sqrt(dot(prod, va, va) * dot(prod, vb, vb))
		if norm == 0 {
			return 0
		}

		return ab / norm
	case ModeTanimoto:
		denom := dot(prod, va, va) + dot(prod, vb, vb) - ab
		if denom <= 0 {
			return 0
		}

		return ab / denom
	}

	return 0
}

// unionKeys returns the assigned keys of both sets, a's insertion order
// first, then b's additions.
func unionKeys(a, b *spectrum.Set) []string {
	keys := a.Keys()
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}

	for _, k := range b.Keys() {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}

	return keys
}

func intensityByKey(s *spectrum.Set) map[string]float64 {
	out := make(map[string]float64, s.Len())
	for _, e := range s.Entries() {
		if e.Assigned {
			out[e.Formula.Key()] = e.Intensity
		}
	}
	return out
}

// fillIntensities writes the intensity of every key into dst, 0 for
// keys the set does not carry.
func fillIntensities(dst []float64, intensities map[string]float64, keys []string) {
	for i, k := range keys {
		dst[i] = intensities[k]
	}
}

// dot multiplies element-wise into prod and reduces. All slices share a
// length.
func dot(prod, x, y []float64) float64 {
	vecmath.MulBlock(prod, x, y)

	sum := 0.0
	for _, v := range prod {
		sum += v
	}

	return sum
}

// scratchBuf holds pooled scratch memory for pair vector alignment.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (va, vb, prod []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}
