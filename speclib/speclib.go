// Package speclib writes spectrum sets to SQLite library files.
package speclib

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cwbudde/algo-masskit/ms/spectrum"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Date format for HeaderTable (ISO 8601).
	headerDateFormat = "2006-01-02"
	// schemaVersion is stamped into HeaderTable on Finalize.
	schemaVersion = 1
)

// Writer handles writing spectrum sets to SQLite library files.
type Writer struct {
	db         *sql.DB
	outputPath string
	setStmt    *sql.Stmt
	peakStmt   *sql.Stmt
	setID      int
	peakID     int
}

// NewWriter creates a library writer and its schema.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		setID:      1,
		peakID:     1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS SetTable (
		SetId INTEGER PRIMARY KEY,
		Name TEXT,
		PeakCount INTEGER,
		TotalIntensity DOUBLE
	);

	CREATE TABLE IF NOT EXISTS PeakTable (
		PeakId INTEGER PRIMARY KEY,
		SetId INTEGER REFERENCES SetTable(SetId),
		Formula TEXT,
		Assigned BOOL,
		Mass DOUBLE,
		Intensity DOUBLE,
		Presence INTEGER
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.setStmt, err = w.db.Prepare(`
		INSERT INTO SetTable (SetId, Name, PeakCount, TotalIntensity)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare set statement: %w", err)
	}

	w.peakStmt, err = w.db.Prepare(`
		INSERT INTO PeakTable (PeakId, SetId, Formula, Assigned, Mass, Intensity, Presence)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare peak statement: %w", err)
	}

	return nil
}

// WriteSet writes a named spectrum set and all of its peaks.
func (w *Writer) WriteSet(name string, s *spectrum.Set) error {
	_, err := w.setStmt.Exec(
		w.setID,
		name,
		s.Len(),
		s.TotalIntensity(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert set: %w", err)
	}

	for _, e := range s.Entries() {
		key := ""
		if e.Assigned {
			key = e.Formula.Key()
		}

		_, err := w.peakStmt.Exec(
			w.peakID,
			w.setID,
			key,
			e.Assigned,
			e.Mass,
			e.Intensity,
			e.Presence,
		)
		if err != nil {
			return fmt.Errorf("failed to insert peak: %w", err)
		}

		w.peakID++
	}

	w.setID++
	return nil
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Description)
		VALUES (?, ?, ?)
	`, schemaVersion, time.Now().Format(headerDateFormat), "")
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	if w.setStmt != nil {
		w.setStmt.Close()
	}
	if w.peakStmt != nil {
		w.peakStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
