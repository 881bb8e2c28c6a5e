package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docqa/internal/contextutil"
	"docqa/internal/storage"
)

// DocumentsHandler serves the ingestion status of uploaded documents.
type DocumentsHandler struct {
	docs storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(docs storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{docs: docs}
}

// DocumentStatus represents one document in the HTTP response.
type DocumentStatus struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// DocumentListResponse represents the HTTP response for the listing.
type DocumentListResponse struct {
	Documents []DocumentStatus `json:"documents"`
}

func documentStatus(doc *storage.DocumentRecord) DocumentStatus {
	return DocumentStatus{
		Filename:  doc.Filename,
		Status:    doc.Status,
		Error:     doc.Error,
		UpdatedAt: doc.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns the status of every known document.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.docs.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list documents")
		return
	}

	statuses := make([]DocumentStatus, 0, len(docs))
	for i := range docs {
		statuses = append(statuses, documentStatus(&docs[i]))
	}

	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: statuses})
}

// Get returns the status of a single document, for ingestion polling.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	filename := chi.URLParam(r, "filename")
	doc, err := h.docs.GetByFilename(ctx, filename)
	if err != nil {
		logger.WarnContext(ctx, "document lookup failed", "filename", filename, "error", err)
		handleServiceError(w, ctx, err, "Failed to look up document")
		return
	}

	writeJSON(w, http.StatusOK, documentStatus(doc))
}
