package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohamadmonzer-a/railwayBackend/service"
	"github.com/mohamadmonzer-a/railwayBackend/types"
	"github.com/mohamadmonzer-a/railwayBackend/utils"
)

// multipartOverhead is the room left in the request body for boundaries,
// part headers and the session_id field.
const multipartOverhead = 64 << 10

// DocumentUploader runs the upload pipeline for one document.
type DocumentUploader interface {
	Upload(ctx context.Context, doc types.UploadedDocument) (*types.UploadResult, error)
}

type UploadHandler struct {
	uploader       DocumentUploader
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewUploadHandler never buffers more than maxUploadBytes of file content;
// zero or less disables the limit.
func NewUploadHandler(uploader DocumentUploader, maxUploadBytes int64, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{
		uploader:       uploader,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadPDFHandler accepts a multipart "file" field and an optional
// "session_id" form field or query parameter.
func (h *UploadHandler) UploadPDFHandler(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: "No file uploaded."})
		return
	}
	defer file.Close()

	content, err := utils.ReadAllLimited(file, h.maxUploadBytes)
	if errors.Is(err, utils.ErrTooLarge) || isBodyTooLarge(err) {
		h.tooLarge(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: "Failed to read uploaded file."})
		return
	}

	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}

	result, err := h.uploader.Upload(c.Request.Context(), types.UploadedDocument{
		FileName:  header.Filename,
		Content:   content,
		SessionID: sessionID,
	})
	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("upload failed",
				zap.String("file_name", header.Filename),
				zap.Stringer("kind", service.KindOf(err)),
				zap.Error(err),
			)
		}
		_ = c.Error(err)
		c.JSON(status, types.ErrorResponse{Detail: err.Error()})
		return
	}

	if result.Duplicate {
		c.JSON(http.StatusOK, types.UploadResponse{Message: types.MessageDuplicate})
		return
	}
	c.JSON(http.StatusOK, types.UploadResponse{
		Message: types.MessageUploaded,
		ID:      result.ID,
	})
}

func (h *UploadHandler) tooLarge(c *gin.Context) {
	err := service.FileTooLargeError(h.maxUploadBytes)
	_ = c.Error(err)
	c.JSON(statusForError(err), types.ErrorResponse{Detail: err.Error()})
}

func isBodyTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// statusForError is the single place where failure kinds become HTTP statuses.
func statusForError(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindExtraction:
		return http.StatusBadRequest
	case service.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
