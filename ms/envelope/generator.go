package envelope

import (
	"container/heap"
	"fmt"
	"math"
	"strconv"

	"github.com/esote/minmaxheap"

	"github.com/cwbudde/algo-masskit/ms/formula"
	"github.com/cwbudde/algo-masskit/ms/isotope"
)

// Generator enumerates the most probable isotopologue peaks of molecular
// formulas.
//
// The search runs best-first over isotopologue states:
//  1. Start from the baseline state with every atom on its element's
//     principal isotope.
//  2. Pop the most probable open state and emit its (mass, probability).
//  3. Queue every neighbor obtained by moving a single atom from its
//     current isotope to the next less abundant one, skipping states
//     already seen.
//  4. Stop after maxIterations pops or when the queue runs empty.
//
// Emitted probabilities are exact multinomial terms, so the cumulative
// probability of the emitted points grows monotonically toward one as
// maxIterations increases. A Generator holds no per-call state and is
// safe for concurrent use.
type Generator struct {
	table       *isotope.Table
	binWidth    float64
	maxFrontier int
}

// New returns a Generator for the given configuration. Zero-value fields
// select defaults as documented on Config.
func New(cfg Config) *Generator {
	g := &Generator{table: cfg.Table, binWidth: cfg.BinWidth, maxFrontier: cfg.MaxFrontier}
	if g.table == nil {
		g.table = isotope.Default()
	}
	if g.binWidth == 0 {
		g.binWidth = DefaultBinWidth
	}
	if g.maxFrontier < 0 {
		g.maxFrontier = 0
	}
	return g
}

// Generate enumerates up to maxIterations isotopologue states of f and
// returns the resulting peaks ordered by ascending mass. A maxIterations
// below one behaves as one, yielding only the baseline peak. Points
// closer than the configured bin width are merged; probabilities are
// never renormalized, so a truncated distribution sums to less than one.
func (g *Generator) Generate(f formula.Formula, maxIterations int) (Distribution, error) {
	if f.IsEmpty() {
		return nil, ErrEmptyFormula
	}
	if maxIterations < 1 {
		maxIterations = 1
	}
	run, err := g.newRun(f)
	if err != nil {
		return nil, err
	}

	base := run.baseline()
	visited := map[string]struct{}{base.key: {}}
	open := newFrontier(g.maxFrontier)
	open.insert(base)

	points := make(Distribution, 0, maxIterations)
	for len(points) < maxIterations && open.Len() > 0 {
		s := open.popBest()
		points = append(points, Point{Mass: s.mass, Probability: math.Exp(s.logProb)})
		run.expand(s, func(n *searchState) {
			if _, seen := visited[n.key]; seen {
				return
			}
			visited[n.key] = struct{}{}
			open.insert(n)
		})
	}
	return binPoints(points, g.binWidth), nil
}

// Generate enumerates up to maxIterations isotopologue states of f
// against the given table using default generation settings. A nil table
// selects the bundled default.
func Generate(f formula.Formula, table *isotope.Table, maxIterations int) (Distribution, error) {
	return New(Config{Table: table}).Generate(f, maxIterations)
}

// searchState is one isotopologue state: how many atoms of each element
// sit on each of its isotopes, flattened element-major. The key is the
// canonical encoding of the counts and doubles as the deterministic
// tie-breaker.
type searchState struct {
	counts  []int
	mass    float64
	logProb float64
	key     string
}

type elementRun struct {
	atoms  int
	offset int
	isos   []isotope.Isotope
	logAb  []float64
}

type runContext struct {
	elems []elementRun
	slots int
}

func (g *Generator) newRun(f formula.Formula) (*runContext, error) {
	symbols := f.Elements()
	run := &runContext{elems: make([]elementRun, 0, len(symbols))}
	for _, sym := range symbols {
		isos, err := g.table.Isotopes(sym)
		if err != nil {
			return nil, fmt.Errorf("envelope: %w", err)
		}
		logAb := make([]float64, len(isos))
		for i, iso := range isos {
			logAb[i] = math.Log(iso.Abundance)
		}
		run.elems = append(run.elems, elementRun{
			atoms:  f.Count(sym),
			offset: run.slots,
			isos:   isos,
			logAb:  logAb,
		})
		run.slots += len(isos)
	}
	return run, nil
}

// baseline is the all-principal-isotopes state. Its multinomial
// coefficient is one, so the log probability reduces to counts times log
// abundances.
func (r *runContext) baseline() *searchState {
	counts := make([]int, r.slots)
	mass, logProb := 0.0, 0.0
	for _, el := range r.elems {
		counts[el.offset] = el.atoms
		mass += float64(el.atoms) * el.isos[0].Mass
		logProb += float64(el.atoms) * el.logAb[0]
	}
	return &searchState{counts: counts, mass: mass, logProb: logProb, key: stateKey(counts)}
}

// expand visits every state reachable from s by moving one atom to the
// next less abundant isotope of its element. Mass and log probability
// are updated incrementally; the multinomial ratio for moving an atom
// from slot j to j+1 is (a[j+1]/a[j]) * k[j] / (k[j+1]+1).
func (r *runContext) expand(s *searchState, visit func(*searchState)) {
	for _, el := range r.elems {
		for j := 0; j+1 < len(el.isos); j++ {
			o := el.offset + j
			if s.counts[o] == 0 {
				continue
			}
			counts := make([]int, len(s.counts))
			copy(counts, s.counts)
			counts[o]--
			counts[o+1]++
			logProb := s.logProb + el.logAb[j+1] - el.logAb[j] +
				math.Log(float64(s.counts[o])) - math.Log(float64(s.counts[o+1]+1))
			mass := s.mass + el.isos[j+1].Mass - el.isos[j].Mass
			visit(&searchState{counts: counts, mass: mass, logProb: logProb, key: stateKey(counts)})
		}
	}
}

func stateKey(counts []int) string {
	buf := make([]byte, 0, len(counts)*3)
	for i, c := range counts {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(c), 10)
	}
	return string(buf)
}

// frontier is the open-state priority queue. Less orders by decreasing
// probability so the heap minimum is the most probable open state, which
// lets a bounded frontier evict its least probable entry from the other
// end.
type frontier struct {
	states []*searchState
	limit  int
}

var _ heap.Interface = (*frontier)(nil)

func newFrontier(limit int) *frontier {
	if limit > 0 {
		// One extra slot so insert can push before evicting.
		return &frontier{states: make([]*searchState, 0, limit+1), limit: limit}
	}
	return &frontier{}
}

func (f *frontier) Len() int { return len(f.states) }

func (f *frontier) Less(i, j int) bool {
	a, b := f.states[i], f.states[j]
	if a.logProb != b.logProb {
		return a.logProb > b.logProb
	}
	return a.key < b.key
}

func (f *frontier) Swap(i, j int) { f.states[i], f.states[j] = f.states[j], f.states[i] }

func (f *frontier) Push(x any) { f.states = append(f.states, x.(*searchState)) }

func (f *frontier) Pop() any {
	n := len(f.states)
	last := f.states[n-1]
	f.states = f.states[:n-1]
	return last
}

func (f *frontier) insert(s *searchState) {
	minmaxheap.Push(f, s)
	if f.limit > 0 && len(f.states) > f.limit {
		minmaxheap.PopMax(f)
	}
}

func (f *frontier) popBest() *searchState {
	return minmaxheap.Pop(f).(*searchState)
}

// binPoints sorts points by ascending mass and merges maximal runs whose
// consecutive gaps are below width. Merged probability is the sum of the
// run, merged mass the probability-weighted mean. A width <= 0 only
// sorts.
func binPoints(points Distribution, width float64) Distribution {
	sortByMass(points)
	if width <= 0 || len(points) < 2 {
		return points
	}
	out := make(Distribution, 0, len(points))
	start := 0
	for i := 1; i <= len(points); i++ {
		if i < len(points) && points[i].Mass-points[i-1].Mass < width {
			continue
		}
		out = append(out, mergeRun(points[start:i]))
		start = i
	}
	return out
}

func mergeRun(run Distribution) Point {
	if len(run) == 1 {
		return run[0]
	}
	mass, prob := 0.0, 0.0
	for _, p := range run {
		mass += p.Mass * p.Probability
		prob += p.Probability
	}
	if prob == 0 {
		mass = 0
		for _, p := range run {
			mass += p.Mass
		}
		return Point{Mass: mass / float64(len(run))}
	}
	return Point{Mass: mass / prob, Probability: prob}
}
