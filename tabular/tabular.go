// Package tabular loads and saves spectra and candidate tables as
// delimited text.
//
// Spectrum files carry one peak per row with at least a mass and an
// intensity column; a brutto column with formula text is optional.
// Source column names map onto the canonical names via [Mapper].
// Candidate tables carry one count column per element plus a mass
// column and default to ';' as the delimiter, matching the historic
// export format.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-masskit/ms/brutto"
	"github.com/cwbudde/algo-masskit/ms/formula"
	"github.com/cwbudde/algo-masskit/ms/spectrum"
)

var (
	// ErrMissingHeader indicates an input without a header row.
	ErrMissingHeader = errors.New("tabular: missing header row")
	// ErrMissingColumn indicates that a required column is not present
	// after mapping.
	ErrMissingColumn = errors.New("tabular: required column not found")
)

// Mapper renames source columns to the canonical field names "mass",
// "intensity" and "brutto", for example {"m/z": "mass", "I": "intensity"}.
type Mapper map[string]string

// Options configures delimited reading and writing.
type Options struct {
	// Comma is the field delimiter. Zero selects ',' for spectra and
	// ';' for candidate tables.
	Comma rune
	// Mapper renames source columns before canonical matching.
	Mapper Mapper
	// Ignore lists source columns to drop entirely, before mapping.
	Ignore []string
}

func (o Options) comma(fallback rune) rune {
	if o.Comma != 0 {
		return o.Comma
	}
	return fallback
}

func (o Options) ignored() map[string]struct{} {
	out := make(map[string]struct{}, len(o.Ignore))
	for _, name := range o.Ignore {
		out[strings.TrimSpace(name)] = struct{}{}
	}
	return out
}

// canonical returns the canonical lower-case name of a source column,
// or "" when the column is ignored.
func (o Options) canonical(name string, ignored map[string]struct{}) string {
	name = strings.TrimSpace(name)
	if _, ok := ignored[name]; ok {
		return ""
	}
	if mapped, ok := o.Mapper[name]; ok {
		name = mapped
	}
	return strings.ToLower(name)
}

// ReadSpectrum reads peaks from delimited text. The first row must be a
// header; mapped "mass" and "intensity" columns are required. A "brutto"
// column is parsed into a formula when present; rows whose formula text
// does not parse stay unassigned rather than failing the load. Every
// entry starts with presence 1. Rows sharing an assigned formula merge
// by the set's identity rule.
func ReadSpectrum(r io.Reader, opts Options) (*spectrum.Set, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.comma(',')
	cr.FieldsPerRecord = 0
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}

	ignored := opts.ignored()
	mass, intensity, brCol := -1, -1, -1
	for i, name := range header {
		switch opts.canonical(name, ignored) {
		case "mass":
			if mass == -1 {
				mass = i
			}
		case "intensity":
			if intensity == -1 {
				intensity = i
			}
		case "brutto":
			if brCol == -1 {
				brCol = i
			}
		}
	}
	if mass == -1 {
		return nil, fmt.Errorf("%w: mass", ErrMissingColumn)
	}
	if intensity == -1 {
		return nil, fmt.Errorf("%w: intensity", ErrMissingColumn)
	}

	set := spectrum.NewSet()
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("tabular: line %d: %w", line, err)
		}

		e := spectrum.Entry{Presence: 1}
		e.Mass, err = strconv.ParseFloat(strings.TrimSpace(row[mass]), 64)
		if err != nil {
			return nil, fmt.Errorf("tabular: line %d: mass: %w", line, err)
		}
		e.Intensity, err = strconv.ParseFloat(strings.TrimSpace(row[intensity]), 64)
		if err != nil {
			return nil, fmt.Errorf("tabular: line %d: intensity: %w", line, err)
		}
		if brCol >= 0 {
			if f, err := formula.Parse(row[brCol]); err == nil && !f.IsEmpty() {
				e.Formula = f
				e.Assigned = true
			}
		}
		set.Add(e)
	}
	return set, nil
}

// ReadSpectrumFile reads peaks from a delimited file.
func ReadSpectrumFile(path string, opts Options) (*spectrum.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}
	defer f.Close()
	return ReadSpectrum(f, opts)
}

// WriteSpectrum writes the set as delimited text with mass, intensity,
// brutto and presence columns. Unassigned entries get an empty brutto
// cell.
func WriteSpectrum(w io.Writer, s *spectrum.Set, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma(',')

	if err := cw.Write([]string{"mass", "intensity", "brutto", "presence"}); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	for _, e := range s.Entries() {
		key := ""
		if e.Assigned {
			key = e.Formula.Key()
		}
		row := []string{
			formatFloat(e.Mass),
			formatFloat(e.Intensity),
			key,
			strconv.Itoa(e.Presence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("tabular: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	return nil
}

// WriteSpectrumFile writes the set to a delimited file.
func WriteSpectrumFile(path string, s *spectrum.Set, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	if err := WriteSpectrum(f, s, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	return nil
}

// ReadCandidates reads a candidate table. Every header cell that is a
// valid element symbol becomes a count column; a mapped "mass" column is
// required. Rows with only zero counts are skipped. The delimiter
// defaults to ';'.
func ReadCandidates(r io.Reader, opts Options) ([]brutto.Candidate, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.comma(';')
	cr.FieldsPerRecord = 0
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}

	ignored := opts.ignored()
	mass := -1
	elements := make(map[int]string, len(header))
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		if opts.canonical(name, ignored) == "mass" {
			if mass == -1 {
				mass = i
			}
			continue
		}
		if _, ok := ignored[trimmed]; ok {
			continue
		}
		if formula.ValidSymbol(trimmed) {
			elements[i] = trimmed
		}
	}
	if mass == -1 {
		return nil, fmt.Errorf("%w: mass", ErrMissingColumn)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: element counts", ErrMissingColumn)
	}

	var cands []brutto.Candidate
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("tabular: line %d: %w", line, err)
		}

		counts := make(map[string]int, len(elements))
		for col, sym := range elements {
			n, err := strconv.Atoi(strings.TrimSpace(row[col]))
			if err != nil {
				return nil, fmt.Errorf("tabular: line %d: %s count: %w", line, sym, err)
			}
			if n != 0 {
				counts[sym] = n
			}
		}
		if len(counts) == 0 {
			continue
		}

		f, err := formula.New(counts)
		if err != nil {
			return nil, fmt.Errorf("tabular: line %d: %w", line, err)
		}
		m, err := strconv.ParseFloat(strings.TrimSpace(row[mass]), 64)
		if err != nil {
			return nil, fmt.Errorf("tabular: line %d: mass: %w", line, err)
		}
		cands = append(cands, brutto.Candidate{Formula: f, Mass: m})
	}
	return cands, nil
}

// ReadCandidatesFile reads a candidate table from a file.
func ReadCandidatesFile(path string, opts Options) ([]brutto.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}
	defer f.Close()
	return ReadCandidates(f, opts)
}

// WriteCandidates writes the candidate table with one count column per
// element in Hill order plus a trailing mass column. The delimiter
// defaults to ';'.
func WriteCandidates(w io.Writer, cands []brutto.Candidate, opts Options) error {
	symbols, err := hillSymbols(cands)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = opts.comma(';')

	header := append(append(make([]string, 0, len(symbols)+1), symbols...), "mass")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	row := make([]string, len(symbols)+1)
	for _, c := range cands {
		for i, sym := range symbols {
			row[i] = strconv.Itoa(c.Formula.Count(sym))
		}
		row[len(symbols)] = formatFloat(c.Mass)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("tabular: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	return nil
}

// WriteCandidatesFile writes the candidate table to a file.
func WriteCandidatesFile(path string, cands []brutto.Candidate, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	if err := WriteCandidates(f, cands, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	return nil
}

// hillSymbols collects every element used by the candidates in Hill
// order.
func hillSymbols(cands []brutto.Candidate) ([]string, error) {
	counts := make(map[string]int)
	for _, c := range cands {
		for _, sym := range c.Formula.Elements() {
			counts[sym] = 1
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}
	f, err := formula.New(counts)
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}
	return f.Elements(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
