package service

import (
	"context"
	"sync"
)

// hashLocks serializes work on the same content hash inside this process.
// Entries are dropped once nobody holds or waits for them.
type hashLocks struct {
	mu    sync.Mutex
	locks map[string]*hashLock
}

type hashLock struct {
	sem  chan struct{}
	refs int
}

func newHashLocks() *hashLocks {
	return &hashLocks{locks: make(map[string]*hashLock)}
}

// Lock waits for the lock on key, or for ctx to be done. On success the
// returned func releases it.
func (h *hashLocks) Lock(ctx context.Context, key string) (func(), error) {
	h.mu.Lock()
	l, ok := h.locks[key]
	if !ok {
		l = &hashLock{sem: make(chan struct{}, 1)}
		h.locks[key] = l
	}
	l.refs++
	h.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
		return func() {
			<-l.sem
			h.release(key, l)
		}, nil
	case <-ctx.Done():
		h.release(key, l)
		return nil, ctx.Err()
	}
}

func (h *hashLocks) release(key string, l *hashLock) {
	h.mu.Lock()
	defer h.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(h.locks, key)
	}
}

func (h *hashLocks) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.locks)
}
