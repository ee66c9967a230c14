package similarity

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-masskit/internal/testutil"
	"github.com/cwbudde/algo-masskit/ms/formula"
	"github.com/cwbudde/algo-masskit/ms/spectrum"
)

func assigned(expr string, intensity float64) spectrum.Entry {
	return spectrum.Entry{Formula: formula.MustParse(expr), Assigned: true, Intensity: intensity}
}

// pairAB builds the two-set fixture used by the mode tests. Aligned over
// the union of keys the intensity vectors are [3 4 0] and [6 0 8].
func pairAB() Collection {
	a := spectrum.FromEntries([]spectrum.Entry{
		assigned("C6H12O6", 3),
		assigned("C2H6O", 4),
		{Mass: 512.5, Intensity: 99},
	})
	b := spectrum.FromEntries([]spectrum.Entry{
		assigned("C6H12O6", 6),
		assigned("CH4", 8),
	})
	return Collection{Names: []string{"a", "b"}, Sets: []*spectrum.Set{a, b}}
}

func TestMatrixModes(t *testing.T) {
	tests := []struct {
		mode Mode
		want float64
	}{
		{ModeJaccard, 1.0 / 3.0},
		{ModeCosine, 18.0 / 50.0},
		{ModeTanimoto, 18.0 / 107.0},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			m, err := Matrix(pairAB(), tt.mode)
			if err != nil {
				t.Fatalf("Matrix() error = %v", err)
			}
			testutil.RequireNearlyEqual(t, m[0][1], tt.want, 1e-12)
			testutil.RequireNearlyEqual(t, m[1][0], tt.want, 1e-12)
			testutil.RequireNearlyEqual(t, m[0][0], 1, 0)
			testutil.RequireNearlyEqual(t, m[1][1], 1, 0)
		})
	}
}

func TestMatrixIdenticalSets(t *testing.T) {
	a := spectrum.FromEntries([]spectrum.Entry{assigned("C6H12O6", 3), assigned("C2H6O", 4)})
	c := Collection{Names: []string{"x", "y"}, Sets: []*spectrum.Set{a, a.Clone()}}

	for _, mode := range []Mode{ModeJaccard, ModeCosine, ModeTanimoto} {
		m, err := Matrix(c, mode)
		if err != nil {
			t.Fatalf("Matrix(%v) error = %v", mode, err)
		}
		testutil.RequireNearlyEqual(t, m[0][1], 1, 1e-12)
	}
}

func TestMatrixEmptySet(t *testing.T) {
	a := spectrum.FromEntries([]spectrum.Entry{assigned("C6H12O6", 3)})
	c := Collection{Names: []string{"a", "empty"}, Sets: []*spectrum.Set{a, spectrum.NewSet()}}

	for _, mode := range []Mode{ModeJaccard, ModeCosine, ModeTanimoto} {
		m, err := Matrix(c, mode)
		if err != nil {
			t.Fatalf("Matrix(%v) error = %v", mode, err)
		}
		if m[0][1] != 0 {
			t.Errorf("Matrix(%v) empty pair = %v, want 0", mode, m[0][1])
		}
		if m[1][1] != 1 {
			t.Errorf("Matrix(%v) empty diagonal = %v, want 1", mode, m[1][1])
		}
	}
}

func TestMatrixSymmetric(t *testing.T) {
	sets := make([]*spectrum.Set, 0, 12)
	names := make([]string, 0, 12)
	formulas := []string{"CH4", "C2H6O", "C6H12O6", "H2O", "C9H8O4", "C2H4O2"}
	for i := 0; i < 12; i++ {
		entries := make([]spectrum.Entry, 0, len(formulas))
		for j, f := range formulas {
			if (i+j)%3 == 0 {
				continue
			}
			entries = append(entries, assigned(f, float64(1+i*j%7)))
		}
		sets = append(sets, spectrum.FromEntries(entries))
		names = append(names, formulas[i%len(formulas)])
	}

	c, err := NewCollection(names, sets)
	if err != nil {
		t.Fatalf("NewCollection() error = %v", err)
	}

	for _, mode := range []Mode{ModeJaccard, ModeCosine, ModeTanimoto} {
		m, err := Matrix(c, mode)
		if err != nil {
			t.Fatalf("Matrix(%v) error = %v", mode, err)
		}
		for i := range m {
			if m[i][i] != 1 {
				t.Errorf("Matrix(%v) diagonal [%d] = %v, want 1", mode, i, m[i][i])
			}
			for j := range m[i] {
				if m[i][j] != m[j][i] {
					t.Errorf("Matrix(%v) [%d][%d] = %v, [%d][%d] = %v, want symmetric",
						mode, i, j, m[i][j], j, i, m[j][i])
				}
				if m[i][j] < 0 || m[i][j] > 1 {
					t.Errorf("Matrix(%v) [%d][%d] = %v, want within [0, 1]", mode, i, j, m[i][j])
				}
			}
		}
	}
}

func TestMatrixUnknownMode(t *testing.T) {
	if _, err := Matrix(pairAB(), Mode(99)); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Matrix(Mode(99)) error = %v, want ErrUnknownMode", err)
	}
	if _, err := Matrix(pairAB(), Mode(-1)); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Matrix(Mode(-1)) error = %v, want ErrUnknownMode", err)
	}
}

func TestNewCollection(t *testing.T) {
	if _, err := NewCollection([]string{"a"}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("NewCollection() error = %v, want ErrLengthMismatch", err)
	}

	c, err := NewCollection([]string{"a", "b"}, []*spectrum.Set{spectrum.NewSet(), spectrum.NewSet()})
	if err != nil {
		t.Fatalf("NewCollection() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"jaccard", ModeJaccard, false},
		{"COSINE", ModeCosine, false},
		{" tanimoto ", ModeTanimoto, false},
		{"euclidean", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownMode) {
				t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMode(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if got := ModeTanimoto.String(); got != "tanimoto" {
		t.Errorf("String() = %q, want tanimoto", got)
	}
	if got := Mode(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
