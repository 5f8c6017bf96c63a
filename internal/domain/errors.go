package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeContentUnavailable = "CONTENT_UNAVAILABLE"
	ErrCodeExternalService    = "EXTERNAL_SERVICE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrInvalidVideoURL      = NewDomainError(ErrCodeValidation, "could not extract video ID from URL")
	ErrInvalidChunk         = NewDomainError(ErrCodeValidation, "invalid chunk")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	// ErrEmbeddingsNotFound means no embedding file exists on disk for a video,
	// in any tier. Callers recover by running an explicit chunk build.
	ErrEmbeddingsNotFound = NewDomainError(ErrCodeNotFound, "no embeddings found for video")
)

// Content source errors
var (
	ErrVideoNotFound = NewDomainError(ErrCodeContentUnavailable, "video not found or is private")
	ErrNoContent     = NewDomainError(ErrCodeContentUnavailable, "video has no retrievable text content")
)

// External service errors
var (
	ErrEmbeddingFailed  = NewDomainError(ErrCodeExternalService, "embedding service call failed")
	ErrGenerationFailed = NewDomainError(ErrCodeExternalService, "generation service call failed")
)
