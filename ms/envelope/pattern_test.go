package envelope

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-masskit/internal/testutil"
	"github.com/cwbudde/algo-masskit/ms/formula"
	"github.com/cwbudde/algo-masskit/ms/isotope"
)

func TestAggregatedPatternChlorine(t *testing.T) {
	// Cl2 has isotopes two nucleons apart, so odd shifts are empty and
	// the even shifts carry the binomial terms.
	got, err := AggregatedPattern(formula.MustParse("Cl2"), nil, 5)
	if err != nil {
		t.Fatalf("AggregatedPattern() error = %v", err)
	}
	want := []float64{0.7576 * 0.7576, 0, 2 * 0.7576 * 0.2424, 0, 0.2424 * 0.2424}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestAggregatedPatternTruncation(t *testing.T) {
	got, err := AggregatedPattern(formula.MustParse("Cl2"), nil, 2)
	if err != nil {
		t.Fatalf("AggregatedPattern() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	testutil.RequireNearlyEqual(t, got[0], 0.7576*0.7576, 1e-9)
}

func TestAggregatedPatternMonoisotopicFormula(t *testing.T) {
	// Na, F and I are monoisotopic, so the envelope is a single peak of
	// probability one regardless of the requested width.
	got, err := AggregatedPattern(formula.MustParse("NaF"), nil, 8)
	if err != nil {
		t.Fatalf("AggregatedPattern() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	testutil.RequireNearlyEqual(t, got[0], 1.0, 1e-12)
}

func TestAggregatedPatternMatchesEnumeration(t *testing.T) {
	// The FFT path and the state enumeration must agree on the
	// aggregated peaks once the enumeration is effectively exhaustive.
	f := formula.MustParse("C6H12O6")
	dist, err := Generate(f, nil, 2000)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	base := 6*12.0 + 12*1.00782503207 + 6*15.99491461956
	sums := make([]float64, 4)
	for _, p := range dist {
		shift := int(math.Round(p.Mass - base))
		if shift >= 0 && shift < len(sums) {
			sums[shift] += p.Probability
		}
	}

	got, err := AggregatedPattern(f, nil, 4)
	if err != nil {
		t.Fatalf("AggregatedPattern() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, sums, 1e-7)
}

func TestAggregatedPatternLargeFormula(t *testing.T) {
	// C100H202 is far beyond practical enumeration; the pattern must
	// still be a plausible envelope: finite, non-negative, summing to
	// about one over enough peaks.
	got, err := AggregatedPattern(formula.MustParse("C100H202"), nil, 30)
	if err != nil {
		t.Fatalf("AggregatedPattern() error = %v", err)
	}
	testutil.RequireFinite(t, got)
	total := 0.0
	for _, v := range got {
		if v < 0 {
			t.Fatalf("negative probability %v", v)
		}
		total += v
	}
	testutil.RequireNearlyEqual(t, total, 1.0, 1e-6)
	// With 100 carbons the A+1 peak overtakes the monoisotopic peak.
	if got[1] <= got[0] {
		t.Fatalf("expected A+1 (%v) above A+0 (%v) for C100H202", got[1], got[0])
	}
}

func TestAggregatedPatternErrors(t *testing.T) {
	if _, err := AggregatedPattern(formula.Formula{}, nil, 5); !errors.Is(err, ErrEmptyFormula) {
		t.Fatalf("empty formula error = %v, want ErrEmptyFormula", err)
	}
	if _, err := AggregatedPattern(formula.MustParse("C6"), nil, 0); !errors.Is(err, ErrInvalidMaxPeaks) {
		t.Fatalf("zero maxPeaks error = %v, want ErrInvalidMaxPeaks", err)
	}
	if _, err := AggregatedPattern(formula.MustParse("Xx2"), nil, 5); !errors.Is(err, isotope.ErrUnknownElement) {
		t.Fatalf("unknown element error = %v, want isotope.ErrUnknownElement", err)
	}
}
