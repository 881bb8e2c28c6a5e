// Package handlers exposes the document question-answering service over
// HTTP: JSON in, JSON out, service errors mapped to status codes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"docqa/internal/contextutil"
	"docqa/internal/extract"
	"docqa/internal/service"
	"docqa/internal/storage"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// handleServiceError maps service errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	var unsupportedErr *extract.UnsupportedFileTypeError
	if errors.As(err, &unsupportedErr) {
		writeError(w, http.StatusUnsupportedMediaType, unsupportedErr.Error())
		return
	}

	switch {
	case errors.Is(err, extract.ErrExtraction):
		writeError(w, http.StatusUnprocessableEntity, "Could not extract text from the file")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrGenerationTimeout):
		writeError(w, http.StatusGatewayTimeout, "Answer generation timed out")
	case errors.Is(err, service.ErrGenerationService),
		errors.Is(err, service.ErrEmbeddingService),
		errors.Is(err, service.ErrIndexUnavailable):
		writeError(w, http.StatusBadGateway, "Upstream service error")
	default:
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}
