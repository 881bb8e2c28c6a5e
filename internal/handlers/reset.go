package handlers

import (
	"net/http"

	"docqa/internal/contextutil"
	"docqa/internal/service"
)

// Reset confirmation messages.
const (
	resetKeptFilesMessage    = "AI Memory wiped. Files remain in storage for fast re-loading."
	resetDeletedFilesMessage = "AI Memory wiped and stored files deleted."
)

// ResetHandler handles HTTP requests for wiping the index.
type ResetHandler struct {
	resetService service.ResetService
}

// NewResetHandler creates a new ResetHandler.
func NewResetHandler(resetService service.ResetService) *ResetHandler {
	return &ResetHandler{resetService: resetService}
}

// ResetResponse represents the HTTP response payload for a reset.
type ResetResponse struct {
	Message       string `json:"message"`
	PointsRemoved int    `json:"points_removed"`
}

// ServeHTTP wipes the index. With ?delete_files=true the cached upload
// files are removed as well.
func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodDelete {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	deleteFiles := r.URL.Query().Get("delete_files") == "true"

	removed, err := h.resetService.Reset(ctx, deleteFiles)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to reset index")
		return
	}

	message := resetKeptFilesMessage
	if deleteFiles {
		message = resetDeletedFilesMessage
	}

	writeJSON(w, http.StatusOK, ResetResponse{
		Message:       message,
		PointsRemoved: removed,
	})
}
