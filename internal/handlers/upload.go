package handlers

import (
	"net/http"
	"path/filepath"

	"docqa/internal/contextutil"
	"docqa/internal/service"
)

// maxUploadBytes bounds the multipart form held in memory.
const maxUploadBytes = 32 << 20

// UploadHandler handles HTTP requests for document uploads.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadResponse represents the HTTP response payload for an upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// ServeHTTP handles multipart document uploads.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "missing file field", "error", err)
		writeError(w, http.StatusBadRequest, "Missing \"file\" form field")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	message, err := h.uploadService.Accept(ctx, header.Filename, file)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to accept upload")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Filename: filepath.Base(header.Filename),
		Message:  message,
	})
}
