package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRowConversion(t *testing.T) {
	rec := &PDFRecord{
		SessionID:   DefaultSessionID,
		Content:     "Hello",
		ContentHash: "abc",
		Embedding:   []float32{0.5, -1},
		FileName:    "hello.pdf",
	}

	row := toRow(rec)
	assert.Equal(t, "abc", row.ContentHash)
	assert.Equal(t, []float32{0.5, -1}, row.Embedding.Slice())
	assert.NotNil(t, row.Metadata, "metadata is stored as an empty object, not NULL")
	assert.Nil(t, row.Message)

	row.ID = 3
	back := fromRow(row)
	assert.Equal(t, int64(3), back.ID)
	assert.Equal(t, rec.Content, back.Content)
	assert.Equal(t, rec.Embedding, back.Embedding)
	assert.Equal(t, rec.FileName, back.FileName)
}

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	require.NoError(t, err)
	return newPostgresStore(db, "pdf"), mock
}

func TestPostgresStore_FindByHash(t *testing.T) {
	store, mock := newMockPostgresStore(t)
	query := regexp.QuoteMeta(`FROM "pdf" WHERE content_hash = $1`)

	mock.ExpectQuery(query).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	found, err := store.FindByHash(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(5), found.ID)

	mock.ExpectQuery(query).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	found, err = store.FindByHash(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, found, "no row is not an error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Insert(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "pdf"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	inserted, err := store.Insert(context.Background(), &PDFRecord{
		SessionID:   DefaultSessionID,
		Content:     "Hello",
		ContentHash: "abc",
		Embedding:   []float32{0.1, 0.2},
		Metadata:    map[string]any{},
		FileName:    "hello.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), inserted.ID)
	assert.Equal(t, "abc", inserted.ContentHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantDup bool
	}{
		{
			name:    "unique violation",
			err:     &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "idx_pdf_content_hash"`},
			wantDup: true,
		},
		{
			name: "other failure",
			err:  errors.New("connection reset by peer"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, mock := newMockPostgresStore(t)

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "pdf"`)).WillReturnError(tc.err)
			mock.ExpectRollback()

			_, err := store.Insert(context.Background(), &PDFRecord{ContentHash: "abc", Embedding: []float32{1}})
			require.Error(t, err)
			if tc.wantDup {
				assert.ErrorIs(t, err, ErrDuplicate)
			} else {
				assert.NotErrorIs(t, err, ErrDuplicate)
				assert.Contains(t, err.Error(), "postgres insert error")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
