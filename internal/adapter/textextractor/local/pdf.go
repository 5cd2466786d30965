package local

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/lessonbridge/doc-extractor/internal/domain"
	"github.com/lessonbridge/doc-extractor/pkg/textx"
)

// extractPDF reads the PDF from memory and concatenates the plain text of
// every page. Pages that fail to decode are logged and skipped rather than
// failing the whole document; the parser's page-level complaints are
// warnings, not errors, to the caller.
func extractPDF(ctx context.Context, data []byte) (text string, err error) {
	// The pdf library panics on some malformed cross-reference tables;
	// surface those as the same failure kind as a parse error.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrPdfFailure, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPdfFailure, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("pdf page extraction failed", slog.Int("page", i), slog.Any("error", err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}
	return textx.StripControl(b.String()), nil
}
