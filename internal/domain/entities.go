// Package domain holds the entities, error taxonomy, and ports of the
// document text-extraction service. It carries no transport or library
// concerns; adapters depend on it, never the other way around.
package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Error taxonomy (sentinels). Every failure is terminal for its request;
// the HTTP layer maps each sentinel to exactly one status code.
var (
	ErrMissingFile     = errors.New("missing file")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrDocxFailure     = errors.New("docx extraction failed")
	ErrPdfFailure      = errors.New("pdf extraction failed")
	ErrNoTextExtracted = errors.New("no text extracted")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal error")
)

// SupportedExtensions lists the document extensions the service accepts,
// in the order they are reported to clients.
var SupportedExtensions = []string{".docx", ".pdf"}

// DocKind is the closed enumeration of supported document types,
// resolved once from the filename rather than re-checked ad hoc.
type DocKind int

// Document kinds.
const (
	DocUnknown DocKind = iota
	DocDocx
	DocPdf
)

// String returns the lowercase kind name used in logs and metrics labels.
func (k DocKind) String() string {
	switch k {
	case DocDocx:
		return "docx"
	case DocPdf:
		return "pdf"
	default:
		return "unknown"
	}
}

// KindFromFilename resolves the document kind from the case-insensitive
// filename suffix.
func KindFromFilename(name string) DocKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return DocDocx
	case ".pdf":
		return DocPdf
	default:
		return DocUnknown
	}
}

// UploadedFile is the transient request-scoped upload. The buffer never
// outlives the request/response cycle: no caching, no disk write-through.
type UploadedFile struct {
	Name string
	Data []byte
}

// ExtractionResult is the successful outcome of one extraction, serialized
// into the upload response and then discarded.
type ExtractionResult struct {
	Text            string
	OriginalName    string
	FileSize        int64
	ExtractedLength int       // runes in Text
	ProcessingTime  int64     // wall-clock milliseconds from request start
	Timestamp       time.Time // response-construction instant, UTC
}

// NoTextError reports a document that parsed cleanly but yielded only
// whitespace. RawLength preserves the pre-trim rune count for diagnostics.
type NoTextError struct {
	RawLength int
}

func (e *NoTextError) Error() string {
	return fmt.Sprintf("%v: document decoded to %d whitespace-only characters", ErrNoTextExtracted, e.RawLength)
}

// Unwrap lets errors.Is match the sentinel.
func (e *NoTextError) Unwrap() error { return ErrNoTextExtracted }

// TextExtractor (port)
// Extract translates raw document bytes into plain text, dispatching on the
// filename suffix. Implementations must not touch disk or the network; the
// whole document is parsed from the in-memory buffer.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
