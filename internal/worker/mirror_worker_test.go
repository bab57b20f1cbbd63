package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"bizdash/internal/amqp"
	"bizdash/internal/sheets"
	"bizdash/internal/sheets/memory"
	"bizdash/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "bizdash.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProcessBacklogMirrorsPendingRows(t *testing.T) {
	store := newTestStore(t)
	sheet := memory.New()
	ctx := context.Background()

	if err := store.AppendRange(ctx, sheets.RangeClients, [][]any{
		{"c1", "Acme", "1 Main St", "Milan", "2024-01-01T00:00:00Z"},
		{"c2", "Beta", "2 Side St", "Rome", "2024-01-02T00:00:00Z"},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	w := NewMirrorWorker(store, sheet, 10)
	if err := w.ProcessBacklog(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}

	if sheet.Len(sheets.RangeClients) != 2 {
		t.Fatalf("sheet rows=%d want 2", sheet.Len(sheets.RangeClients))
	}
	pending, err := store.PendingRows(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("mirrored rows still pending: %d", len(pending))
	}

	// A second pass with nothing pending is a no-op.
	if err := w.ProcessBacklog(ctx); err != nil {
		t.Fatalf("idle pass: %v", err)
	}
	if sheet.Len(sheets.RangeClients) != 2 {
		t.Fatalf("idle pass must not append again")
	}
}

func TestProcessBacklogKeepsFailedRowsPending(t *testing.T) {
	store := newTestStore(t)
	sheet := memory.New()
	ctx := context.Background()

	if err := store.AppendRange(ctx, sheets.RangeExpenses, [][]any{
		{"x1", "Tools", 49.99, "p1", "2024-02-15", "license"},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	sheet.FailAppends(errors.New("quota exceeded"))
	w := NewMirrorWorker(store, sheet, 10)

	if err := w.ProcessBacklog(ctx); err == nil {
		t.Fatalf("want error when mirroring fails")
	}
	pending, _ := store.PendingRows(ctx, 10)
	if len(pending) != 1 {
		t.Fatalf("failed row must stay pending, got %d", len(pending))
	}

	// Next pass succeeds and drains the backlog.
	sheet.FailAppends(nil)
	if err := w.ProcessBacklog(ctx); err != nil {
		t.Fatalf("retry pass: %v", err)
	}
	pending, _ = store.PendingRows(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("backlog not drained after retry")
	}
}

func TestHandleRecordCreatedTriggersPass(t *testing.T) {
	store := newTestStore(t)
	sheet := memory.New()
	ctx := context.Background()

	if err := store.AppendRange(ctx, sheets.RangeIncome, [][]any{
		{"t1", "c1", 1000.50, "2024-02-10", "deposit", "p1"},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	w := NewMirrorWorker(store, sheet, 10)
	msg := amqp.NewRecordCreatedMessage(sheets.RangeIncome, "t1")
	if err := w.HandleRecordCreated(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if sheet.Len(sheets.RangeIncome) != 1 {
		t.Fatalf("event must trigger a mirror pass")
	}
}

func TestProcessBacklogHonorsBatchSize(t *testing.T) {
	store := newTestStore(t)
	sheet := memory.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.AppendRange(ctx, sheets.RangeClients, [][]any{
			{"c", "Nick", "Addr", "City", ""},
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	w := NewMirrorWorker(store, sheet, 2)
	if err := w.ProcessBacklog(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}
	if got := sheet.Len(sheets.RangeClients); got != 2 {
		t.Fatalf("batch size ignored: mirrored %d rows", got)
	}
	pending, _ := store.PendingRows(ctx, 10)
	if len(pending) != 1 {
		t.Fatalf("want 1 row left pending, got %d", len(pending))
	}
}
