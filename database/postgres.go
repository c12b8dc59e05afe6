package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pdfRow mirrors the Supabase "pdf" table for direct Postgres access.
type pdfRow struct {
	ID          int64             `gorm:"primaryKey"`
	SessionID   string            `gorm:"type:text;not null;default:'default'"`
	Content     string            `gorm:"type:text"`
	ContentHash string            `gorm:"type:text;not null;uniqueIndex"`
	Message     *string           `gorm:"type:text"`
	Embedding   pgvector.Vector   `gorm:"type:vector"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	FileName    string            `gorm:"type:text"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
}

type PostgresStore struct {
	db    *gorm.DB
	table string
}

// NewPostgresStore connects with dsn and makes sure the vector extension and
// the table with its unique content hash index exist.
func NewPostgresStore(ctx context.Context, dsn, table string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("failed to enable pgvector: %w", err)
	}
	if err := db.WithContext(ctx).Table(table).AutoMigrate(&pdfRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %s table: %w", table, err)
	}

	return newPostgresStore(db, table), nil
}

// gormConfig turns driver errors into gorm errors, so a unique violation
// surfaces as gorm.ErrDuplicatedKey.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

func newPostgresStore(db *gorm.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, table: table}
}

func (s *PostgresStore) FindByHash(ctx context.Context, hash string) (*PDFRecord, error) {
	var row pdfRow
	err := s.db.WithContext(ctx).
		Table(s.table).
		Select("id").
		Where("content_hash = ?", hash).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres select error: %w", err)
	}
	return &PDFRecord{ID: row.ID}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, rec *PDFRecord) (*PDFRecord, error) {
	row := toRow(rec)
	if err := s.db.WithContext(ctx).Table(s.table).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("postgres insert error: %w", err)
	}
	return fromRow(row), nil
}

func (s *PostgresStore) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func toRow(rec *PDFRecord) pdfRow {
	metadata := datatypes.JSONMap(rec.Metadata)
	if metadata == nil {
		metadata = datatypes.JSONMap{}
	}
	return pdfRow{
		SessionID:   rec.SessionID,
		Content:     rec.Content,
		ContentHash: rec.ContentHash,
		Message:     rec.Message,
		Embedding:   pgvector.NewVector(rec.Embedding),
		Metadata:    metadata,
		FileName:    rec.FileName,
	}
}

func fromRow(row pdfRow) *PDFRecord {
	return &PDFRecord{
		ID:          row.ID,
		SessionID:   row.SessionID,
		Content:     row.Content,
		ContentHash: row.ContentHash,
		Message:     row.Message,
		Embedding:   row.Embedding.Slice(),
		Metadata:    map[string]any(row.Metadata),
		FileName:    row.FileName,
	}
}
