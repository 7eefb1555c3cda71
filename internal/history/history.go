// Package history provides SQLite-backed storage of past analyses, so users
// can compare a document's scores across revisions. Opt-in; the pipeline
// never touches it unless enabled.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/prosecheck/prosecheck/internal/model"
)

// Store records analysis summaries in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one stored analysis summary.
type Entry struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Format     string    `json:"format"`
	WordCount  int       `json:"word_count"`
	Flesch     float64   `json:"flesch"`
	IssueCount int       `json:"issue_count"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Open opens or creates the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// SQLite supports a single writer; more connections just contend.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: path}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		format TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		flesch REAL,
		issue_count INTEGER NOT NULL,
		analyzed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_source ON analyses(source);
	CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores the summary of one report.
func (s *Store) Record(ctx context.Context, report *model.Report) error {
	var wordCount int
	if v, ok := report.Readability.Get(model.MetricWordCount); ok && !v.NA {
		wordCount = int(v.Number)
	}

	var flesch sql.NullFloat64
	if v, ok := report.Readability.Get(model.MetricFlesch); ok && !v.NA {
		flesch = sql.NullFloat64{Float64: v.Number, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, source, format, word_count, flesch, issue_count, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Source, string(report.Format),
		wordCount, flesch, len(report.Issues),
		report.AnalyzedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record analysis: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, format, word_count, flesch, issue_count, analyzed_at
		FROM analyses
		ORDER BY analyzed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// BySource returns all entries for one source, newest first.
func (s *Store) BySource(ctx context.Context, source string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, format, word_count, flesch, issue_count, analyzed_at
		FROM analyses
		WHERE source = ?
		ORDER BY analyzed_at DESC`, source)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			flesch   sql.NullFloat64
			analyzed string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.Format, &e.WordCount, &flesch, &e.IssueCount, &analyzed); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if flesch.Valid {
			e.Flesch = flesch.Float64
		}
		t, err := time.Parse(time.RFC3339Nano, analyzed)
		if err != nil {
			return nil, fmt.Errorf("parse analyzed_at: %w", err)
		}
		e.AnalyzedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
