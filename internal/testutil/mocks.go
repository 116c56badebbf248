// Package testutil provides shared fakes for unit tests.
package testutil

import (
	"context"
	"sync"

	"ekstre/internal/domain"
)

// MemoryStore is an in-memory session.Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports how many keys the store currently holds.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Has reports whether a key is present.
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// StubAPI is a canned view.API that records the filters it was called with.
type StubAPI struct {
	mu sync.Mutex

	ListFunc    func(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error)
	SummaryFunc func(ctx context.Context, startDate, endDate domain.Date, targetCurrency string) (*domain.Summary, error)

	ListCalls    []domain.TransactionFilter
	SummaryCalls int
}

func (s *StubAPI) ListTransactions(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
	s.mu.Lock()
	s.ListCalls = append(s.ListCalls, filter)
	fn := s.ListFunc
	s.mu.Unlock()
	if fn == nil {
		return &domain.TransactionPage{}, nil
	}
	return fn(ctx, filter)
}

// Calls returns a copy of the recorded list filters.
func (s *StubAPI) Calls() []domain.TransactionFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TransactionFilter(nil), s.ListCalls...)
}

func (s *StubAPI) Summary(ctx context.Context, startDate, endDate domain.Date, targetCurrency string) (*domain.Summary, error) {
	s.mu.Lock()
	s.SummaryCalls++
	fn := s.SummaryFunc
	s.mu.Unlock()
	if fn == nil {
		return &domain.Summary{}, nil
	}
	return fn(ctx, startDate, endDate, targetCurrency)
}
