// Package httpserver contains HTTP handlers and middleware.
//
// It provides the REST endpoints of the service: document upload with text
// extraction, the analyze stub, health, and the service-identity root. The
// package keeps HTTP concerns separate from the extraction logic.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lessonbridge/doc-extractor/internal/domain"
)

// apiError is the wire shape of every failure response. Only a sanitized
// subset of the server-side error reaches the client; stack traces never do.
type apiError struct {
	Error           string   `json:"error"`
	Message         string   `json:"message"`
	SupportedTypes  []string `json:"supportedTypes,omitempty"`
	ExtractedLength *int     `json:"extractedLength,omitempty"`
	MaxMB           int64    `json:"maxMb,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain sentinel to its single HTTP status and wire code.
func writeError(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := apiError{Error: "UNEXPECTED_ERROR", Message: "unexpected error"}
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		status = http.StatusBadRequest
		resp.Error = "MISSING_FILE"
		resp.Message = err.Error()
	case errors.Is(err, domain.ErrUnsupportedType):
		status = http.StatusBadRequest
		resp.Error = "UNSUPPORTED_TYPE"
		resp.Message = err.Error()
		resp.SupportedTypes = domain.SupportedExtensions
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
		resp.Error = "INVALID_ARGUMENT"
		resp.Message = err.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
		resp.Error = "FILE_TOO_LARGE"
		resp.Message = err.Error()
	case errors.Is(err, domain.ErrNoTextExtracted):
		status = http.StatusUnprocessableEntity
		resp.Error = "NO_TEXT_EXTRACTED"
		resp.Message = err.Error()
		var nte *domain.NoTextError
		if errors.As(err, &nte) {
			resp.ExtractedLength = &nte.RawLength
		}
	case errors.Is(err, domain.ErrDocxFailure), errors.Is(err, domain.ErrPdfFailure):
		status = http.StatusInternalServerError
		resp.Error = "EXTRACTION_FAILED"
		resp.Message = err.Error()
	}
	writeJSON(w, status, resp)
}
