// Package memory implements the range store in process memory. It backs the
// "memory" data backend for local runs and is the canonical fake in tests.
package memory

import (
	"context"
	"sync"

	ports "bizdash/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	ranges map[string][][]any

	readErr   error
	appendErr error
}

var _ ports.Store = (*Store)(nil)

func New() *Store {
	return &Store{ranges: make(map[string][][]any)}
}

// NewWithHeaders returns a store with every known range provisioned with its
// header row, mirroring a freshly initialized spreadsheet.
func NewWithHeaders(headers map[string][]any) *Store {
	s := New()
	for rangeID, header := range headers {
		s.ranges[rangeID] = [][]any{append([]any(nil), header...)}
	}
	return s
}

// Seed replaces the contents of a range, header row included.
func (s *Store) Seed(rangeID string, rows [][]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]any, len(rows))
	for i, r := range rows {
		cp[i] = append([]any(nil), r...)
	}
	s.ranges[rangeID] = cp
}

// FailReads makes every subsequent ReadRange return err; nil restores reads.
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailAppends makes every subsequent AppendRange return err; nil restores appends.
func (s *Store) FailAppends(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendErr = err
}

func (s *Store) ReadRange(_ context.Context, rangeID string) ([][]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	rows := s.ranges[rangeID]
	cp := make([][]any, len(rows))
	for i, r := range rows {
		cp[i] = append([]any(nil), r...)
	}
	return cp, nil
}

func (s *Store) AppendRange(_ context.Context, rangeID string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	for _, r := range rows {
		s.ranges[rangeID] = append(s.ranges[rangeID], append([]any(nil), r...))
	}
	return nil
}

// Len returns the number of rows currently stored for a range.
func (s *Store) Len(rangeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ranges[rangeID])
}
