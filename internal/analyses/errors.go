package analyses

import (
	"errors"
	"net/http"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/server/respond"
)

var (
	// ErrMissingInput is returned when the résumé or the job description is absent.
	ErrMissingInput = errors.New("missing input")
	// ErrFileTooLarge is returned when the upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidRequest is returned when the multipart body cannot be parsed.
	ErrInvalidRequest = errors.New("invalid request")
)

const (
	ErrorCodeMissingInput      = "missing_input"
	ErrorCodeFileTooLarge      = "file_too_large"
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeUnsupportedFormat = "unsupported_format"
	ErrorCodeExtraction        = "extraction_failure"
	ErrorCodeInternal          = respond.CodeInternal
)

// Classify maps an analysis error to an HTTP status, an error code and a
// user-facing message.
func Classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrMissingInput):
		return http.StatusBadRequest, ErrorCodeMissingInput, "a resume file and a job description are required"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, ErrorCodeInvalidRequest, "the upload could not be read as a multipart form"
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorCodeFileTooLarge, "the uploaded file is too large"
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, ErrorCodeUnsupportedFormat, "only PDF and DOCX resumes are supported"
	case errors.Is(err, extract.ErrExtractionFailure):
		return http.StatusUnprocessableEntity, ErrorCodeExtraction, "the resume could not be read"
	default:
		return http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze resume"
	}
}
