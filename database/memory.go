package database

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process. It enforces the same content hash
// uniqueness as the remote backends.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []PDFRecord
	byHash  map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byHash: make(map[string]int)}
}

func (s *MemoryStore) FindByHash(ctx context.Context, hash string) (*PDFRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byHash[hash]
	if !ok {
		return nil, nil
	}
	rec := s.records[idx]
	return &rec, nil
}

func (s *MemoryStore) Insert(ctx context.Context, rec *PDFRecord) (*PDFRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHash[rec.ContentHash]; ok {
		return nil, ErrDuplicate
	}
	s.nextID++
	stored := *rec
	stored.ID = s.nextID
	s.byHash[stored.ContentHash] = len(s.records)
	s.records = append(s.records, stored)
	return &stored, nil
}

// Records returns a copy of every stored record in insertion order.
func (s *MemoryStore) Records() []PDFRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PDFRecord, len(s.records))
	copy(out, s.records)
	return out
}
