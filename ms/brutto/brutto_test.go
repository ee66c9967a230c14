package brutto

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-masskit/internal/testutil"
	"github.com/cwbudde/algo-masskit/ms/isotope"
)

func TestGenerateCountAndOrder(t *testing.T) {
	got, err := Generate(Config{
		Elements: []string{"C", "H", "O"},
		Ranges:   []Range{{1, 3}, {2, 6}, {0, 2}},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := 3 * 5 * 3
	if len(got) != want {
		t.Fatalf("len = %d, want %d", len(got), want)
	}
	masses := make([]float64, len(got))
	for i, c := range got {
		masses[i] = c.Mass
	}
	testutil.RequireAscending(t, masses)
}

func TestGenerateMasses(t *testing.T) {
	got, err := Generate(Config{
		Elements: []string{"C", "H"},
		Ranges:   []Range{{1, 1}, {4, 4}},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Formula.Key() != "CH4" {
		t.Fatalf("Key = %q, want CH4", got[0].Formula.Key())
	}
	want := 12.0 + 4*1.00782503207
	if math.Abs(got[0].Mass-want) > 1e-9 {
		t.Fatalf("Mass = %v, want %v", got[0].Mass, want)
	}
}

func TestGenerateSkipsEmptyComposition(t *testing.T) {
	got, err := Generate(Config{
		Elements: []string{"C", "H"},
		Ranges:   []Range{{0, 1}, {0, 1}},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// Four count vectors, the all-zero one dropped.
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, c := range got {
		if c.Formula.IsEmpty() {
			t.Fatal("empty formula in candidate table")
		}
	}
}

func TestGenerateEmptyElements(t *testing.T) {
	got, err := Generate(Config{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestGenerateValidation(t *testing.T) {
	if _, err := Generate(Config{Elements: []string{"C"}, Ranges: nil}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("error = %v, want ErrLengthMismatch", err)
	}
	if _, err := Generate(Config{Elements: []string{"C"}, Ranges: []Range{{-1, 2}}}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("error = %v, want ErrInvalidRange", err)
	}
	if _, err := Generate(Config{Elements: []string{"C"}, Ranges: []Range{{3, 1}}}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("error = %v, want ErrInvalidRange", err)
	}
	if _, err := Generate(Config{Elements: []string{"Xx"}, Ranges: []Range{{0, 1}}}); !errors.Is(err, isotope.ErrUnknownElement) {
		t.Fatalf("error = %v, want isotope.ErrUnknownElement", err)
	}
}

func TestGenerateCandidateCap(t *testing.T) {
	_, err := Generate(Config{
		Elements:      []string{"C", "H"},
		Ranges:        []Range{{0, 9}, {0, 9}},
		MaxCandidates: 50,
	})
	if !errors.Is(err, ErrTooManyCandidates) {
		t.Fatalf("error = %v, want ErrTooManyCandidates", err)
	}
}

func TestGenerateDistinctFormulas(t *testing.T) {
	got, err := Generate(Config{
		Elements: []string{"C", "H", "N"},
		Ranges:   []Range{{0, 2}, {0, 3}, {0, 1}},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	seen := make(map[string]struct{}, len(got))
	for _, c := range got {
		key := c.Formula.Key()
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate candidate formula %q", key)
		}
		seen[key] = struct{}{}
	}
}
