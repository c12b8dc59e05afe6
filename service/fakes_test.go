package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/mohamadmonzer-a/railwayBackend/database"
)

type fakeEmbedder struct {
	vector    []float32
	errs      []error // returned by the first calls, in order
	permanent error
	delay     time.Duration
	calls     int32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	n := int(atomic.AddInt32(&f.calls, 1))
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if n <= len(f.errs) {
		return nil, f.errs[n-1]
	}
	return f.vector, nil
}

func (f *fakeEmbedder) IsTransient(err error) bool {
	return f.permanent == nil || !errors.Is(err, f.permanent)
}

func (f *fakeEmbedder) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

// failingStore wraps a MemoryStore and can fail or stall its operations.
type failingStore struct {
	*database.MemoryStore
	findErr   error
	insertErr error
	stall     bool
}

func (s *failingStore) FindByHash(ctx context.Context, hash string) (*database.PDFRecord, error) {
	if s.stall {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.MemoryStore.FindByHash(ctx, hash)
}

func (s *failingStore) Insert(ctx context.Context, rec *database.PDFRecord) (*database.PDFRecord, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	return s.MemoryStore.Insert(ctx, rec)
}

// staleStore never finds anything, like a lookup racing another instance's
// insert.
type staleStore struct {
	*database.MemoryStore
}

func (s *staleStore) FindByHash(ctx context.Context, hash string) (*database.PDFRecord, error) {
	return nil, nil
}
