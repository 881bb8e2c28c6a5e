package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/extract"
	"docqa/internal/storage"
)

// Status strings returned to the uploader.
const (
	UploadStatusCached   = "File found in cache. Loading into AI memory immediately."
	UploadStatusAccepted = "File uploaded and processing started."
)

// Ingestor queues a document for background ingestion.
// This interface is defined from the service layer's perspective (consumer-first).
type Ingestor interface {
	Enqueue(ctx context.Context, filename string) error
}

// UploadService accepts document uploads and queues their ingestion.
type UploadService interface {
	// Accept stores the upload (unless already cached) and queues its
	// ingestion. The returned status tells the caller which path was taken.
	Accept(ctx context.Context, filename string, r io.Reader) (string, error)
}

// uploadService implements UploadService.
type uploadService struct {
	files    *storage.FileStore
	registry *extract.Registry
	ingestor Ingestor
}

// NewUploadService creates a new UploadService.
func NewUploadService(files *storage.FileStore, registry *extract.Registry, ingestor Ingestor) UploadService {
	return &uploadService{
		files:    files,
		registry: registry,
		ingestor: ingestor,
	}
}

func (s *uploadService) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

// Accept validates the upload, caches new files and enqueues ingestion.
// Already-cached files skip the save but are still re-ingested, so the
// index always reflects the latest upload.
func (s *uploadService) Accept(ctx context.Context, filename string, r io.Reader) (string, error) {
	logger := s.getLogger(ctx)

	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return "", &ValidationError{Field: "file", Message: "filename cannot be empty"}
	}
	if !s.registry.Supported(filename) {
		return "", &extract.UnsupportedFileTypeError{Ext: strings.ToLower(filepath.Ext(filename))}
	}

	cached := s.files.Exists(filename)
	if !cached {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		if err := s.files.Save(filename, data); err != nil {
			return "", err
		}
	}

	if err := s.ingestor.Enqueue(ctx, filename); err != nil {
		return "", fmt.Errorf("failed to queue ingestion: %w", err)
	}

	logger.InfoContext(ctx, "upload accepted", "filename", filename, "cached", cached)
	if cached {
		return UploadStatusCached, nil
	}
	return UploadStatusAccepted, nil
}
