package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseStore talks to the Supabase REST endpoint (PostgREST) with the
// service role key.
type SupabaseStore struct {
	client *postgrest.Client
	table  string
}

func NewSupabaseStore(supabaseURL, serviceRoleKey, table string) (*SupabaseStore, error) {
	if supabaseURL == "" || serviceRoleKey == "" {
		return nil, errors.New("supabase url and service role key are required")
	}
	restURL := strings.TrimRight(supabaseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(restURL, "public", map[string]string{
		"apikey":        serviceRoleKey,
		"Authorization": "Bearer " + serviceRoleKey,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", client.ClientError)
	}
	return &SupabaseStore{
		client: client,
		table:  table,
	}, nil
}

func (s *SupabaseStore) FindByHash(ctx context.Context, hash string) (*PDFRecord, error) {
	rows, err := withContext(ctx, func() ([]PDFRecord, error) {
		var rows []PDFRecord
		_, err := s.client.From(s.table).
			Select("id", "", false).
			Eq("content_hash", hash).
			Limit(1, "").
			ExecuteTo(&rows)
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("supabase select error: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *SupabaseStore) Insert(ctx context.Context, rec *PDFRecord) (*PDFRecord, error) {
	row := *rec
	row.ID = nil
	rows, err := withContext(ctx, func() ([]PDFRecord, error) {
		var rows []PDFRecord
		_, err := s.client.From(s.table).
			Insert(row, false, "", "representation", "").
			ExecuteTo(&rows)
		return rows, err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("supabase insert error: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("supabase insert error: no row returned")
	}
	return &rows[0], nil
}

// isUniqueViolation matches Postgres error 23505 as relayed by PostgREST.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

// withContext runs a call that does not accept a context and gives up when
// ctx is done. The call itself keeps running to completion in the background.
func withContext[T any](ctx context.Context, call func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		value, err := call()
		done <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}
