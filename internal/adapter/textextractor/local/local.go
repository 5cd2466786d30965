// Package local implements domain.TextExtractor with in-process parsing
// libraries: github.com/ledongthuc/pdf for PDF and
// github.com/nguyenthenguyen/docx for DOCX.
//
// Everything is parsed from the request buffer; the extractor performs no
// disk or network I/O, so a request's document never outlives the request.
package local

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lessonbridge/doc-extractor/internal/domain"
)

// Extractor dispatches on the filename suffix to the type-specific parser.
type Extractor struct{}

// New constructs the local extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns the plain text of a .docx or .pdf document. The text is
// stripped of control characters but not trimmed; empty-document policy
// belongs to the caller. Unsupported suffixes fail without invoking any
// parsing library.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch domain.KindFromFilename(filename) {
	case domain.DocDocx:
		return extractDOCX(data)
	case domain.DocPdf:
		return extractPDF(ctx, data)
	default:
		ext := strings.ToLower(filepath.Ext(filename))
		if ext == "" {
			ext = "(none)"
		}
		return "", fmt.Errorf("%w: %s, supported: %s", domain.ErrUnsupportedType, ext, strings.Join(domain.SupportedExtensions, ", "))
	}
}
