package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lessonbridge/doc-extractor/internal/domain"
)

func TestIsBodyTooLarge(t *testing.T) {
	require.True(t, isBodyTooLarge(&http.MaxBytesError{Limit: 10}))
	require.True(t, isBodyTooLarge(fmt.Errorf("wrap: %w", &http.MaxBytesError{Limit: 10})))
	require.True(t, isBodyTooLarge(errors.New("multipart: message too large")))
	require.False(t, isBodyTooLarge(errors.New("unexpected EOF")))
}

func TestRecoverer_PanicBecomes500(t *testing.T) {
	h := Recoverer()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Result().StatusCode)
}

func TestRecoverer_SizeLimitPanicBecomes413(t *testing.T) {
	h := Recoverer()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(error(&http.MaxBytesError{Limit: 1}))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Result().StatusCode)
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-Id")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "client-id-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, "client-id-1", rec.Header().Get("X-Request-Id"))
}

func TestWriteError_Mappings(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: field", domain.ErrMissingFile), http.StatusBadRequest, "MISSING_FILE"},
		{fmt.Errorf("%w: .txt", domain.ErrUnsupportedType), http.StatusBadRequest, "UNSUPPORTED_TYPE"},
		{fmt.Errorf("%w: json", domain.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{&domain.NoTextError{RawLength: 3}, http.StatusUnprocessableEntity, "NO_TEXT_EXTRACTED"},
		{fmt.Errorf("%w: x", domain.ErrDocxFailure), http.StatusInternalServerError, "EXTRACTION_FAILED"},
		{fmt.Errorf("%w: x", domain.ErrPdfFailure), http.StatusInternalServerError, "EXTRACTION_FAILED"},
		{errors.New("anything else"), http.StatusInternalServerError, "UNEXPECTED_ERROR"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		require.Equal(t, tt.status, rec.Result().StatusCode, "err=%v", tt.err)
		require.Contains(t, rec.Body.String(), tt.code, "err=%v", tt.err)
	}
}
