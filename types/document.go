package types

// UploadedDocument is the request-scoped input of the upload pipeline.
type UploadedDocument struct {
	FileName  string // Original upload file name
	Content   []byte // Raw file bytes
	SessionID string // Optional, "default" when empty
}

// UploadResult is what the pipeline reports on success.
type UploadResult struct {
	ID        any  // Store-assigned identifier, nil for duplicates
	Duplicate bool // Content hash already stored, nothing was written
}
