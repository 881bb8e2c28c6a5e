package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbeddingService is returned when the embedding service fails.
	ErrEmbeddingService = errors.New("embedding service error")
	// ErrGenerationTimeout is returned when answer generation exceeds the request timeout.
	ErrGenerationTimeout = errors.New("generation timed out")
	// ErrGenerationService is returned when the completion service fails.
	ErrGenerationService = errors.New("generation service error")
	// ErrIndexUnavailable is returned when the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
