// Package storage implements the range store on SQLite for offline-first
// deployments: appends land locally and a worker mirrors them to the
// spreadsheet afterwards. Rows are kept per range in store order, so the
// header-row and positional-column contracts hold exactly as on Sheets.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"bizdash/internal/records"
	ports "bizdash/internal/sheets"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ ports.Store = (*SQLiteStore)(nil)

// PendingRow is a locally-appended row not yet mirrored to the spreadsheet.
type PendingRow struct {
	ID      int64
	RangeID string
	Cells   []any
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.seedHeaders(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed header rows: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// seedHeaders writes the header row of every known range at position 0.
// Headers are marked synced: the spreadsheet already has its own.
func (s *SQLiteStore) seedHeaders(ctx context.Context) error {
	for rangeID, header := range records.Headers {
		cells, err := json.Marshal(header)
		if err != nil {
			return fmt.Errorf("marshal header for %s: %w", rangeID, err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO range_rows (range_id, position, cells, synced) VALUES (?, 0, ?, 1)`,
			rangeID, string(cells))
		if err != nil {
			return fmt.Errorf("insert header for %s: %w", rangeID, err)
		}
	}
	return nil
}

// ReadRange implements sheets.RangeReader.
func (s *SQLiteStore) ReadRange(ctx context.Context, rangeID string) ([][]any, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM range_rows WHERE range_id = ? ORDER BY position`, rangeID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", rangeID, err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var cells []any
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("decode row cells: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", rangeID, err)
	}
	return out, nil
}

// AppendRange implements sheets.RangeAppender. Appends are unsynced until
// the mirror worker pushes them to the spreadsheet.
func (s *SQLiteStore) AppendRange(ctx context.Context, rangeID string, newRows [][]any) error {
	if len(newRows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var next int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM range_rows WHERE range_id = ?`, rangeID).
		Scan(&next)
	if err != nil {
		return fmt.Errorf("next position for %s: %w", rangeID, err)
	}

	for i, row := range newRows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal row cells: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO range_rows (range_id, position, cells, synced) VALUES (?, ?, ?, 0)`,
			rangeID, next+int64(i), string(cells))
		if err != nil {
			return fmt.Errorf("insert row into %s: %w", rangeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}

	slog.InfoContext(ctx, "Rows appended to local mirror", "range", rangeID, "rows", len(newRows))
	return nil
}

// PendingRows returns up to limit locally-appended rows awaiting mirroring,
// oldest first.
func (s *SQLiteStore) PendingRows(ctx context.Context, limit int) ([]PendingRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, range_id, cells FROM range_rows WHERE synced = 0 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending rows: %w", err)
	}
	defer rows.Close()

	var out []PendingRow
	for rows.Next() {
		var p PendingRow
		var raw string
		if err := rows.Scan(&p.ID, &p.RangeID, &raw); err != nil {
			return nil, fmt.Errorf("scan pending row: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &p.Cells); err != nil {
			return nil, fmt.Errorf("decode pending row cells: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending rows: %w", err)
	}
	return out, nil
}

// MarkSynced records that a row reached the spreadsheet.
func (s *SQLiteStore) MarkSynced(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE range_rows SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark row synced: %w", err)
	}
	return nil
}

// MarkSyncError counts a failed mirror attempt; the row stays pending.
func (s *SQLiteStore) MarkSyncError(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE range_rows SET sync_attempts = sync_attempts + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark row sync error: %w", err)
	}
	return nil
}
