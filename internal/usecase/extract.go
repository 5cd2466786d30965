// Package usecase contains the request-scoped application services.
package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/lessonbridge/doc-extractor/internal/domain"
	"github.com/lessonbridge/doc-extractor/pkg/textx"
)

// ExtractService turns an uploaded document into an ExtractionResult via the
// extractor port. It owns the empty-text policy and the response metadata.
type ExtractService struct {
	Extractor domain.TextExtractor
}

// NewExtractService constructs an ExtractService with the given extractor.
func NewExtractService(e domain.TextExtractor) ExtractService { return ExtractService{Extractor: e} }

// Extract runs the extraction and assembles the result. start is the
// request-receipt instant; ProcessingTime is measured from it to result
// construction. A document that decodes to only whitespace fails with
// domain.NoTextError carrying the raw pre-trim character count.
func (s ExtractService) Extract(ctx context.Context, f domain.UploadedFile, start time.Time) (domain.ExtractionResult, error) {
	raw, err := s.Extractor.Extract(ctx, f.Name, f.Data)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	text := textx.SanitizeText(raw)
	if text == "" {
		return domain.ExtractionResult{}, &domain.NoTextError{RawLength: utf8.RuneCountInString(raw)}
	}

	return domain.ExtractionResult{
		Text:            text,
		OriginalName:    f.Name,
		FileSize:        int64(len(f.Data)),
		ExtractedLength: utf8.RuneCountInString(text),
		ProcessingTime:  time.Since(start).Milliseconds(),
		Timestamp:       time.Now().UTC(),
	}, nil
}
