package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mohamadmonzer-a/railwayBackend/config"
)

// DefaultSessionID is stored when an upload carries no session identifier.
const DefaultSessionID = "default"

// ErrDuplicate is returned by Insert when a row with the same content hash
// already exists.
var ErrDuplicate = errors.New("record with this content hash already exists")

// PDFRecord is one persisted upload.
type PDFRecord struct {
	ID          any            `json:"id,omitempty"`
	SessionID   string         `json:"session_id"`
	Content     string         `json:"content"`
	ContentHash string         `json:"content_hash"`
	Message     *string        `json:"message"`
	Embedding   []float32      `json:"embedding"`
	Metadata    map[string]any `json:"metadata"`
	FileName    string         `json:"file_name"`
}

// Store is the remote table holding PDF records.
type Store interface {
	// FindByHash returns the record with the given content hash, or nil when
	// there is none. Only the ID is guaranteed to be populated.
	FindByHash(ctx context.Context, hash string) (*PDFRecord, error)
	// Insert writes rec and returns it with the store-assigned ID.
	Insert(ctx context.Context, rec *PDFRecord) (*PDFRecord, error)
}

// NewStore builds the backend selected by cfg.StoreBackend. The returned
// cleanup func releases its connections.
func NewStore(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	noop := func() {}
	switch cfg.StoreBackend {
	case config.BackendSupabase:
		store, err := NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.StoreTable)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case config.BackendPostgres:
		store, err := NewPostgresStore(ctx, cfg.DatabaseURL, cfg.StoreTable)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.BackendWeaviate:
		store, err := NewWeaviateStore(ctx, cfg.WeaviateHost, cfg.WeaviateAPIKey)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported store backend: %q", cfg.StoreBackend)
	}
}
