package usecase

import (
	"fmt"
	"unicode/utf8"
)

// AnalyzeService is the placeholder behind /analyze. It performs no
// analysis; it reports the received character counts so clients can verify
// round-tripping while the real logic is pending.
type AnalyzeService struct{}

// NewAnalyzeService constructs an AnalyzeService.
func NewAnalyzeService() AnalyzeService { return AnalyzeService{} }

// Summarize returns the stub summary line for the two text blobs.
func (AnalyzeService) Summarize(accommodations, lessonPlan string) string {
	return fmt.Sprintf("Accommodations and lesson plan received (%d / %d characters)",
		utf8.RuneCountInString(accommodations), utf8.RuneCountInString(lessonPlan))
}
