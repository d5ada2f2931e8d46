// Package pdfx extracts plain text from uploaded PDF documents.
package pdfx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ContentType is the only media type accepted for uploads.
const ContentType = "application/pdf"

// ErrNotPDF is returned when the payload lacks the %PDF- signature.
var ErrNotPDF = errors.New("pdfx: not a PDF document")

// HasSignature reports whether b starts with the PDF magic bytes.
func HasSignature(b []byte) bool {
	return bytes.HasPrefix(b, []byte("%PDF-"))
}

// ExtractText returns the text content of every page in order. The pdf
// library panics on some malformed inputs; those panics become errors.
func ExtractText(data []byte) (text string, err error) {
	if !HasSignature(data) {
		return "", ErrNotPDF
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdfx: malformed document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdfx: open: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdfx: extract: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("pdfx: read text: %w", err)
	}
	return sb.String(), nil
}
