package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"resumatch/internal/errors"
)

// Operation names recorded in the history store.
const (
	OperationExtract = "extract"
	OperationMatch   = "match"
	OperationScore   = "score"
	OperationDiff    = "diff"
)

// Entry is a single recorded analysis.
type Entry struct {
	ID           int64     `json:"id"`
	Operation    string    `json:"operation"`
	Score        int       `json:"ats_score"`
	MatchedCount int       `json:"matched_count"`
	MissingCount int       `json:"missing_count"`
	Source       string    `json:"source,omitempty"` // "cli" or "api"
	CreatedAt    time.Time `json:"created_at"`
}

// Stats summarizes the recorded history.
type Stats struct {
	TotalAnalyses int            `json:"total_analyses"`
	AverageScore  float64        `json:"average_score"`
	ByOperation   map[string]int `json:"by_operation"`
}

// History persists analysis results in a SQLite database.
type History struct {
	db     *sql.DB
	logger *errors.Logger
}

// Open opens (or creates) the history database at path.
func Open(path string, logger *errors.Logger) (*History, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
				fmt.Sprintf("failed to create history directory %s", dir), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to open history database %s", path), err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"failed to initialize history schema", err)
	}

	if logger != nil {
		logger.Debug("history store opened", "path", path)
	}
	return &History{db: db, logger: logger}, nil
}

// initSchema creates the analyses table if it doesn't exist.
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS analyses (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		operation     TEXT NOT NULL,
		ats_score     INTEGER NOT NULL,
		matched_count INTEGER NOT NULL,
		missing_count INTEGER NOT NULL,
		source        TEXT,
		created_at    TEXT NOT NULL
	)`)
	return err
}

func validOperation(op string) bool {
	switch op {
	case OperationExtract, OperationMatch, OperationScore, OperationDiff:
		return true
	}
	return false
}

// Record stores one analysis result and returns its row id.
func (h *History) Record(ctx context.Context, entry Entry) (int64, error) {
	op := strings.ToLower(entry.Operation)
	if !validOperation(op) {
		return 0, errors.NewValidationError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid history operation %q", entry.Operation), nil)
	}

	now := time.Now().UTC()
	res, err := h.db.ExecContext(ctx,
		`INSERT INTO analyses (operation, ats_score, matched_count, missing_count, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		op, entry.Score, entry.MatchedCount, entry.MissingCount, entry.Source, now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to record analysis", err)
	}

	id, _ := res.LastInsertId()
	if h.logger != nil {
		h.logger.Debug("analysis recorded", "operation", op, "score", entry.Score, "id", id)
	}
	return id, nil
}

// List returns the most recent analyses, optionally filtered by operation.
func (h *History) List(ctx context.Context, operation string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var (
		rows *sql.Rows
		err  error
	)
	if operation != "" {
		op := strings.ToLower(operation)
		if !validOperation(op) {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid history operation %q", operation), nil)
		}
		rows, err = h.db.QueryContext(ctx,
			`SELECT id, operation, ats_score, matched_count, missing_count, source, created_at
			 FROM analyses WHERE operation = ? ORDER BY id DESC LIMIT ?`, op, limit)
	} else {
		rows, err = h.db.QueryContext(ctx,
			`SELECT id, operation, ats_score, matched_count, missing_count, source, created_at
			 FROM analyses ORDER BY id DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to list analyses", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var source sql.NullString
		var created string
		if err := rows.Scan(&e.ID, &e.Operation, &e.Score, &e.MatchedCount,
			&e.MissingCount, &source, &created); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to scan analysis row", err)
		}
		e.Source = source.String
		e.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
				fmt.Sprintf("invalid created_at timestamp %q", created), err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats aggregates totals and the average score over all recorded analyses.
func (h *History) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByOperation: make(map[string]int)}

	row := h.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(ats_score), 0) FROM analyses`)
	if err := row.Scan(&stats.TotalAnalyses, &stats.AverageScore); err != nil {
		return stats, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to aggregate history stats", err)
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT operation, COUNT(*) FROM analyses GROUP BY operation`)
	if err != nil {
		return stats, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to aggregate per-operation stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var op string
		var count int
		if err := rows.Scan(&op, &count); err != nil {
			return stats, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to scan stats row", err)
		}
		stats.ByOperation[op] = count
	}
	return stats, rows.Err()
}

// Close closes the underlying database.
func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}
