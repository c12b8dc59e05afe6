package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor recovers the text of an uploaded document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFService extracts plain text from PDF bytes page by page.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ExtractText returns the text of every page in page order, each page
// followed by a newline. Only pages with no text at all are skipped; a page of
// blanks still contributes its line. The result is trimmed once at the end.
func (s *PDFService) ExtractText(data []byte) (text string, err error) {
	// The parser panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	totalPages := reader.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageNum, err)
		}
		pageText = stripNUL(pageText)
		if pageText == "" {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	return strings.TrimSpace(builder.String()), nil
}

// stripNUL removes NUL characters, which Postgres text columns reject. Other
// whitespace is kept so the content hash covers the text as extracted.
func stripNUL(text string) string {
	return strings.ReplaceAll(text, "\u0000", "")
}
