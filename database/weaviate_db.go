package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

var (
	PDF_RECORD_CLASS        = "PdfRecord"
	PDF_RECORD_CLASS_OBJECT = &models.Class{
		Class: PDF_RECORD_CLASS,
		Properties: []*models.Property{
			{Name: "sessionId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "contentHash", DataType: []string{"text"}},
			{Name: "message", DataType: []string{"text"}},
			{Name: "metadata", DataType: []string{"text"}},
			{Name: "fileName", DataType: []string{"text"}},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		// Vectors come from our embedding provider
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}

	// Object ids are derived from the content hash, so a second insert of the
	// same content collides on the id.
	pdfRecordNamespace = uuid.MustParse("6f1d3c0e-6a2b-4d8e-9b1f-3c5a7e9d2b40")
)

type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(ctx context.Context, host, apiKey string) (*WeaviateStore, error) {
	var scheme string
	if strings.HasPrefix(host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host = strings.TrimPrefix(host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: apiKey,
		}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasClass := false
	for _, class := range schema.Classes {
		if class.Class == PDF_RECORD_CLASS {
			hasClass = true
			break
		}
	}
	if !hasClass {
		err = client.Schema().ClassCreator().WithClass(PDF_RECORD_CLASS_OBJECT).Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s class: %v", PDF_RECORD_CLASS, err)
		}
	}
	return &WeaviateStore{
		client: client,
	}, nil
}

func (s *WeaviateStore) FindByHash(ctx context.Context, hash string) (*PDFRecord, error) {
	where := filters.Where().
		WithPath([]string{"contentHash"}).
		WithOperator(filters.Equal).
		WithValueString(hash)

	result, err := s.client.GraphQL().Get().
		WithClassName(PDF_RECORD_CLASS).
		WithFields(graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "id"}}}).
		WithWhere(where).
		WithLimit(1).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate lookup error: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("weaviate lookup error: %s", result.Errors[0].Message)
	}

	get, _ := result.Data["Get"].(map[string]interface{})
	items, _ := get[PDF_RECORD_CLASS].([]interface{})
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if additional, ok := obj["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				return &PDFRecord{ID: id, ContentHash: hash}, nil
			}
		}
	}
	return nil, nil
}

func (s *WeaviateStore) Insert(ctx context.Context, rec *PDFRecord) (*PDFRecord, error) {
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	properties := map[string]interface{}{
		"sessionId":   rec.SessionID,
		"content":     rec.Content,
		"contentHash": rec.ContentHash,
		"metadata":    string(metadata),
		"fileName":    rec.FileName,
		"createdAt":   time.Now().Unix(),
	}
	if rec.Message != nil {
		properties["message"] = *rec.Message
	}

	result, err := s.client.Data().Creator().
		WithClassName(PDF_RECORD_CLASS).
		WithID(RecordUUID(rec.ContentHash)).
		WithProperties(properties).
		WithVector(rec.Embedding).
		Do(ctx)
	if err != nil {
		if isWeaviateConflict(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("weaviate insert error: %w", err)
	}

	stored := *rec
	stored.ID = string(result.Object.ID)
	return &stored, nil
}

// RecordUUID is the object id used for a content hash.
func RecordUUID(hash string) string {
	return uuid.NewSHA1(pdfRecordNamespace, []byte(hash)).String()
}

func isWeaviateConflict(err error) bool {
	var clientErr *fault.WeaviateClientError
	if errors.As(err, &clientErr) && clientErr.StatusCode == http.StatusUnprocessableEntity {
		return true
	}
	return strings.Contains(err.Error(), "already exists")
}
