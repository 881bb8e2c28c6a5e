package service

import (
	"context"
	"log/slog"

	"docqa/internal/contextutil"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// ResetService wipes the vector index, keeping or deleting the cached
// files.
type ResetService interface {
	// Reset drops and recreates the collection and clears the document
	// registry. It returns the number of points that were removed.
	Reset(ctx context.Context, deleteFiles bool) (int, error)
}

// resetService implements ResetService.
type resetService struct {
	store      vectorstore.VectorStore
	collection string
	vectorSize int
	docs       storage.DocumentStore
	files      *storage.FileStore
}

// NewResetService creates a new ResetService.
func NewResetService(store vectorstore.VectorStore, collection string, vectorSize int, docs storage.DocumentStore, files *storage.FileStore) ResetService {
	return &resetService{
		store:      store,
		collection: collection,
		vectorSize: vectorSize,
		docs:       docs,
		files:      files,
	}
}

func (s *resetService) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

// Reset counts the indexed points, then drops and recreates the
// collection so it is immediately queryable again. A partial failure is
// reported as-is; callers should re-check the index state afterwards.
func (s *resetService) Reset(ctx context.Context, deleteFiles bool) (int, error) {
	logger := s.getLogger(ctx)

	ids, err := s.store.ListIDs(ctx, s.collection)
	if err != nil {
		return 0, WrapError(ErrIndexUnavailable, err.Error())
	}

	if err := s.store.DeleteCollection(ctx, s.collection); err != nil {
		return 0, WrapError(ErrIndexUnavailable, err.Error())
	}
	if err := s.store.EnsureCollection(ctx, s.collection, s.vectorSize); err != nil {
		return len(ids), WrapError(ErrIndexUnavailable, err.Error())
	}

	if err := s.docs.DeleteAll(ctx); err != nil {
		return len(ids), err
	}

	if deleteFiles {
		if err := s.files.DeleteAll(); err != nil {
			return len(ids), err
		}
	}

	logger.InfoContext(ctx, "index reset", "points_removed", len(ids), "files_deleted", deleteFiles)
	return len(ids), nil
}
