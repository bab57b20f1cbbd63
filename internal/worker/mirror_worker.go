// Package worker mirrors rows appended to the local SQLite store onto the
// Google Sheet. Events from AMQP trigger an immediate pass; a periodic
// backlog scan catches anything a lost message left behind.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bizdash/internal/amqp"
	"bizdash/internal/sheets"
	"bizdash/internal/storage"
)

type MirrorWorker struct {
	store     *storage.SQLiteStore
	sheet     sheets.RangeAppender
	batchSize int

	mu sync.Mutex // one mirror pass at a time
}

func NewMirrorWorker(store *storage.SQLiteStore, sheet sheets.RangeAppender, batchSize int) *MirrorWorker {
	return &MirrorWorker{
		store:     store,
		sheet:     sheet,
		batchSize: batchSize,
	}
}

// HandleRecordCreated reacts to a record-created event. The event is only a
// nudge: the pending set in storage is authoritative, so duplicate or stale
// events are harmless.
func (w *MirrorWorker) HandleRecordCreated(ctx context.Context, msg *amqp.RecordCreatedMessage) error {
	slog.InfoContext(ctx, "Record created event received",
		"range", msg.RangeID,
		"id", msg.RecordID)
	return w.ProcessBacklog(ctx)
}

// ProcessBacklog pushes up to batchSize pending rows to the spreadsheet.
// Each row is marked synced on success; failures count an attempt and leave
// the row pending for the next pass.
func (w *MirrorWorker) ProcessBacklog(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	pending, err := w.store.PendingRows(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending rows: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Mirroring pending rows", "count", len(pending))

	var failed int
	for _, row := range pending {
		if err := w.sheet.AppendRange(ctx, row.RangeID, [][]any{row.Cells}); err != nil {
			failed++
			slog.ErrorContext(ctx, "Failed to mirror row",
				"row_id", row.ID,
				"range", row.RangeID,
				"error", err)
			if markErr := w.store.MarkSyncError(ctx, row.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to record sync error", "row_id", row.ID, "error", markErr)
			}
			continue
		}
		if err := w.store.MarkSynced(ctx, row.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark row synced", "row_id", row.ID, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("mirror backlog: %d of %d rows failed", failed, len(pending))
	}
	return nil
}

// Run scans the backlog on a fixed interval until the context is cancelled.
func (w *MirrorWorker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessBacklog(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic mirror pass failed", "error", err)
			}
		}
	}
}
