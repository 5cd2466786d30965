package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/lessonbridge/doc-extractor/internal/adapter/observability"
	"github.com/lessonbridge/doc-extractor/internal/config"
	"github.com/lessonbridge/doc-extractor/internal/domain"
	"github.com/lessonbridge/doc-extractor/internal/usecase"
)

// Server aggregates handler dependencies. It holds no per-request state;
// Started is read-only after construction.
type Server struct {
	Cfg     config.Config
	Extract usecase.ExtractService
	Analyze usecase.AnalyzeService
	Started time.Time
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, extract usecase.ExtractService, analyze usecase.AnalyzeService) *Server {
	return &Server{Cfg: cfg, Extract: extract, Analyze: analyze, Started: time.Now()}
}

// AvailableEndpoints is the fixed route list reported on 404s.
var AvailableEndpoints = []string{"GET /", "GET /health", "POST /upload", "POST /analyze"}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// isBodyTooLarge reports whether err was caused by the http.MaxBytesReader
// cap. The typed check covers net/http directly; the substring fallback
// covers the error re-wrapped by mime/multipart during form parsing.
func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "too large")
}

// writeFileTooLarge reports the per-file size ceiling. A file only fails
// when it exceeds the ceiling; one of exactly the ceiling is accepted.
func (s *Server) writeFileTooLarge(w http.ResponseWriter) {
	writeJSON(w, http.StatusRequestEntityTooLarge, apiError{
		Error:   "FILE_TOO_LARGE",
		Message: fmt.Sprintf("file exceeds the %d MiB upload limit", s.Cfg.MaxUploadMB),
		MaxMB:   s.Cfg.MaxUploadMB,
	})
}

type uploadMetadata struct {
	OriginalName    string `json:"originalName"`
	FileSize        int64  `json:"fileSize"`
	ExtractedLength int    `json:"extractedLength"`
	ProcessingTime  int64  `json:"processingTime"`
	Timestamp       string `json:"timestamp"`
}

type uploadResponse struct {
	Text     string         `json:"text"`
	Metadata uploadMetadata `json:"metadata"`
}

// UploadHandler handles the multipart document upload and returns the
// extracted text with metadata. Oversized uploads are rejected before any
// extraction work runs: grossly oversized bodies fail during parsing, and
// the exact per-file ceiling is checked once the file bytes are read.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		maxBytes := s.Cfg.MaxUploadBytes()
		// The body cap carries headroom for multipart boundary/header
		// framing; the ceiling on the file itself is enforced below, so a
		// file of exactly maxBytes is still accepted.
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes*2)
		if err := r.ParseMultipartForm(maxBytes * 2); err != nil {
			if isBodyTooLarge(err) {
				s.writeFileTooLarge(w)
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: multipart field %q required", domain.ErrMissingFile, "file"))
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: read upload: %v", domain.ErrInternal, err))
			return
		}
		if int64(len(data)) > maxBytes {
			s.writeFileTooLarge(w)
			return
		}

		kind := domain.KindFromFilename(header.Filename)
		lg := LoggerFrom(r)
		lg.Info("upload received",
			slog.String("filename", header.Filename),
			slog.Int("size_bytes", len(data)),
			slog.String("kind", kind.String()),
			slog.String("detected_mime", mimetype.Detect(data).String()),
		)

		res, err := s.Extract.Extract(r.Context(), domain.UploadedFile{Name: header.Filename, Data: data}, start)
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		observability.RecordExtraction(kind.String(), outcome, time.Since(start))
		if err != nil {
			lg.Warn("extraction failed",
				slog.String("filename", header.Filename),
				slog.Int("size_bytes", len(data)),
				slog.Any("error", err),
			)
			writeError(w, r, err)
			return
		}

		lg.Info("extraction complete",
			slog.String("filename", res.OriginalName),
			slog.Int("extracted_length", res.ExtractedLength),
			slog.Int64("processing_ms", res.ProcessingTime),
		)
		writeJSON(w, http.StatusOK, uploadResponse{
			Text: res.Text,
			Metadata: uploadMetadata{
				OriginalName:    res.OriginalName,
				FileSize:        res.FileSize,
				ExtractedLength: res.ExtractedLength,
				ProcessingTime:  res.ProcessingTime,
				Timestamp:       res.Timestamp.Format(time.RFC3339),
			},
		})
	}
}

type analyzeRequest struct {
	Accommodations string `json:"accommodations" validate:"omitempty,max=200000"`
	LessonPlan     string `json:"lessonPlan" validate:"omitempty,max=200000"`
}

type analyzeResponse struct {
	Message  string         `json:"message"`
	Summary  string         `json:"summary"`
	Received analyzeRequest `json:"received"`
}

// AnalyzeHandler echoes a length-based summary of the two text blobs. It is
// a placeholder until the real analysis pipeline lands.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument))
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: validation failed: %v", domain.ErrInvalidArgument, err))
			return
		}
		writeJSON(w, http.StatusOK, analyzeResponse{
			Message:  "Analysis request received; full analysis is not implemented yet",
			Summary:  s.Analyze.Summarize(req.Accommodations, req.LessonPlan),
			Received: req,
		})
	}
}

// HealthHandler reports liveness for external keep-warm pingers.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(s.Started).Seconds(),
		})
	}
}

// RootHandler returns the static service identity.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "doc-extractor: document text extraction service",
		})
	}
}

// NotFoundHandler lists the available endpoints on unmatched routes.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":              "endpoint not found",
			"availableEndpoints": AvailableEndpoints,
		})
	}
}
