package types

const (
	MessageUploaded  = "PDF uploaded and embedded successfully."
	MessageDuplicate = "This PDF content already exists in the database."
)

type UploadResponse struct {
	Message string `json:"message"`
	ID      any    `json:"id,omitempty"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}
