package envelope

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-masskit/ms/formula"
	"github.com/cwbudde/algo-masskit/ms/isotope"
)

// AggregatedPattern computes the unit-resolution isotopic envelope of f:
// the probabilities of the A+0, A+1, ... aggregated peaks, where shifts
// count nucleons above the all-lightest-isotope peak. It evaluates the
// product of per-element abundance polynomials raised to their atom
// counts in the FFT domain, the classic fast companion to full state
// enumeration for large formulas. At most maxPeaks probabilities are
// returned; fewer when the formula cannot shift that far. The result is
// not normalized and carries no centroid masses.
func AggregatedPattern(f formula.Formula, table *isotope.Table, maxPeaks int) ([]float64, error) {
	if f.IsEmpty() {
		return nil, ErrEmptyFormula
	}
	if maxPeaks < 1 {
		return nil, ErrInvalidMaxPeaks
	}
	if table == nil {
		table = isotope.Default()
	}

	polys, degree, err := shiftPolynomials(f, table)
	if err != nil {
		return nil, err
	}
	if degree == 0 {
		// Every element is effectively monoisotopic.
		prob := 1.0
		for _, p := range polys {
			prob *= math.Pow(p.coeffs[0], float64(p.atoms))
		}
		return []float64{prob}, nil
	}

	size := nextPow2(degree + 1)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to create FFT plan: %w", err)
	}

	acc := make([]complex128, size)
	for i := range acc {
		acc[i] = 1
	}
	buf := make([]complex128, size)
	for _, p := range polys {
		for i := range buf {
			buf[i] = 0
		}
		for d, c := range p.coeffs {
			buf[d] = complex(c, 0)
		}
		if err := plan.Forward(buf, buf); err != nil {
			return nil, fmt.Errorf("envelope: forward FFT failed: %w", err)
		}
		power := complex(float64(p.atoms), 0)
		for i := range acc {
			acc[i] *= cmplx.Pow(buf[i], power)
		}
	}
	if err := plan.Inverse(acc, acc); err != nil {
		return nil, fmt.Errorf("envelope: inverse FFT failed: %w", err)
	}

	n := min(maxPeaks, degree+1)
	out := make([]float64, n)
	for i := range out {
		if v := real(acc[i]); v > 0 {
			out[i] = v
		}
	}
	return out, nil
}

// shiftPoly is an element's abundance polynomial over nucleon shifts
// relative to its lightest isotope.
type shiftPoly struct {
	coeffs []float64
	atoms  int
}

func shiftPolynomials(f formula.Formula, table *isotope.Table) ([]shiftPoly, int, error) {
	symbols := f.Elements()
	polys := make([]shiftPoly, 0, len(symbols))
	degree := 0
	for _, sym := range symbols {
		isos, err := table.Isotopes(sym)
		if err != nil {
			return nil, 0, fmt.Errorf("envelope: %w", err)
		}
		minN, maxN := math.MaxInt, 0
		for _, iso := range isos {
			n := nominalMass(iso.Mass)
			if n < minN {
				minN = n
			}
			if n > maxN {
				maxN = n
			}
		}
		coeffs := make([]float64, maxN-minN+1)
		for _, iso := range isos {
			coeffs[nominalMass(iso.Mass)-minN] += iso.Abundance
		}
		atoms := f.Count(sym)
		degree += atoms * (maxN - minN)
		polys = append(polys, shiftPoly{coeffs: coeffs, atoms: atoms})
	}
	return polys, degree, nil
}

func nominalMass(mass float64) int {
	return int(math.Round(mass))
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
