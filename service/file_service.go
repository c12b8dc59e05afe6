package service

import (
	"context"
	"errors"
	"time"

	"github.com/mohamadmonzer-a/railwayBackend/database"
	"github.com/mohamadmonzer-a/railwayBackend/middleware"
	"github.com/mohamadmonzer-a/railwayBackend/types"
	"github.com/mohamadmonzer-a/railwayBackend/utils"
	"go.uber.org/zap"
)

const pdfExtension = ".pdf"

type UploadServiceConfig struct {
	CallTimeout    time.Duration // Bound on each external call
	MaxUploadBytes int64
}

// UploadService runs the upload pipeline: validate, extract, hash, look for a
// duplicate, embed, insert.
type UploadService struct {
	extractor TextExtractor
	embedder  Embedder
	store     database.Store
	locks     *hashLocks
	cfg       UploadServiceConfig
	logger    *zap.Logger
}

func NewUploadService(
	extractor TextExtractor,
	embedder Embedder,
	store database.Store,
	cfg UploadServiceConfig,
	logger *zap.Logger,
) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		locks:     newHashLocks(),
		cfg:       cfg,
		logger:    logger,
	}
}

// Upload processes one document. Failures are *UploadError values.
func (s *UploadService) Upload(ctx context.Context, doc types.UploadedDocument) (*types.UploadResult, error) {
	start := time.Now()
	log := s.logger.With(
		zap.String("trace_id", middleware.TraceID(ctx)),
		zap.String("file_name", doc.FileName),
	)

	if !utils.HasExtension(doc.FileName, pdfExtension) {
		return nil, validationError("Only PDF files are allowed.")
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(doc.Content)) > s.cfg.MaxUploadBytes {
		return nil, FileTooLargeError(s.cfg.MaxUploadBytes)
	}

	text, err := s.extractor.ExtractText(doc.Content)
	if err != nil {
		return nil, &UploadError{Kind: KindExtraction, Op: "pdf parser", Err: err}
	}
	log.Info("extracted text",
		zap.Int("length", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)

	hash := utils.HashContent(text)

	// Lookup, embed and insert for one hash never interleave in this process;
	// the store's uniqueness constraint covers other instances.
	unlock, err := s.locks.Lock(ctx, hash)
	if err != nil {
		return nil, externalError(KindStore, "database", err)
	}
	defer unlock()

	existing, err := s.findByHash(ctx, hash)
	if err != nil {
		return nil, externalError(KindStore, "database", err)
	}
	if existing != nil {
		log.Info("duplicate content", zap.String("content_hash", hash), zap.Any("id", existing.ID))
		return &types.UploadResult{Duplicate: true}, nil
	}

	vector, err := s.embed(ctx, text)
	if err != nil {
		return nil, externalError(KindEmbedding, "embedding provider", err)
	}
	log.Info("got embedding",
		zap.Int("dimensions", len(vector)),
		zap.Duration("elapsed", time.Since(start)),
	)

	sessionID := doc.SessionID
	if sessionID == "" {
		sessionID = database.DefaultSessionID
	}
	inserted, err := s.insert(ctx, &database.PDFRecord{
		SessionID:   sessionID,
		Content:     text,
		ContentHash: hash,
		Message:     nil,
		Embedding:   vector,
		Metadata:    map[string]any{},
		FileName:    doc.FileName,
	})
	if errors.Is(err, database.ErrDuplicate) {
		log.Info("duplicate content rejected by store", zap.String("content_hash", hash))
		return &types.UploadResult{Duplicate: true}, nil
	}
	if err != nil {
		return nil, externalError(KindStore, "database", err)
	}

	log.Info("inserted record",
		zap.Any("id", inserted.ID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &types.UploadResult{ID: inserted.ID}, nil
}

func (s *UploadService) findByHash(ctx context.Context, hash string) (*database.PDFRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.FindByHash(ctx, hash)
}

func (s *UploadService) embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.embedder.Embed(ctx, text)
}

func (s *UploadService) insert(ctx context.Context, rec *database.PDFRecord) (*database.PDFRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Insert(ctx, rec)
}

func (s *UploadService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.CallTimeout)
}
