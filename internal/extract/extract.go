// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts downloaded PDF byte streams to plain text.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError reports a PDF that could not be parsed: truncated,
// not a PDF at all, or encrypted without a usable password. Permanent for
// the target; the PDF itself is still kept on disk.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor converts a PDF byte stream to plain text. The engine takes
// this interface so tests can substitute a stub.
type Extractor interface {
	Text(pdfBytes []byte) (string, error)
}

// PDF is the production Extractor.
type PDF struct{}

// Text parses pdfBytes and concatenates the extracted text of each page
// in document order. Pages that yield no text are skipped; a document
// that yields none at all is an ExtractionError.
func (PDF) Text(pdfBytes []byte) (text string, err error) {
	// The underlying parser panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil || content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}

	if b.Len() == 0 {
		return "", &ExtractionError{Err: fmt.Errorf("no extractable text")}
	}
	return b.String(), nil
}
