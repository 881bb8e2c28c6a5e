// Package ingest turns cached upload files into indexed vector points:
// extract text units, split them into chunks, embed every chunk in one
// call and write the points plus the registry rows.
package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks docqa/internal/ingest Embedder

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docqa/internal/chunker"
	"docqa/internal/contextutil"
	"docqa/internal/extract"
	"docqa/internal/service"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// Embedder turns texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline orchestrates the ingestion of uploaded documents into SQLite
// and the vector store.
type Pipeline struct {
	files       *storage.FileStore
	registry    *extract.Registry
	splitter    *chunker.Splitter
	docRepo     storage.DocumentStore
	chunkRepo   storage.ChunkStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	files *storage.FileStore,
	registry *extract.Registry,
	splitter *chunker.Splitter,
	docRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		files:       files,
		registry:    registry,
		splitter:    splitter,
		docRepo:     docRepo,
		chunkRepo:   chunkRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
	}
}

func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

// Supported reports whether the pipeline can extract this filename.
func (p *Pipeline) Supported(filename string) bool {
	return p.registry.Supported(filename)
}

// MarkPending records the document as queued for ingestion.
func (p *Pipeline) MarkPending(ctx context.Context, filename string) error {
	doc := &storage.DocumentRecord{
		Filename: filepath.Base(filename),
		Ext:      strings.ToLower(filepath.Ext(filename)),
		Status:   storage.StatusPending,
	}
	return p.docRepo.Upsert(ctx, doc)
}

// MarkFailed records the document as failed with the error text.
func (p *Pipeline) MarkFailed(ctx context.Context, filename string, cause error) {
	if err := p.docRepo.SetStatus(ctx, filepath.Base(filename), storage.StatusFailed, cause.Error()); err != nil {
		p.getLogger(ctx).ErrorContext(ctx, "failed to record ingestion failure",
			"filename", filename, "error", err)
	}
}

// Ingest processes one cached file end to end and returns the number of
// chunks indexed. Old chunks of the same document are replaced. Any
// error before the vector upsert leaves the index unchanged.
func (p *Pipeline) Ingest(ctx context.Context, filename string) (int, error) {
	logger := p.getLogger(ctx)
	filename = filepath.Base(filename)

	content, err := p.files.Read(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to read cached file: %w", err)
	}

	units, err := p.registry.Extract(filename, content)
	if err != nil {
		return 0, err
	}

	// Split every unit, remembering which page each chunk came from.
	type pieceData struct {
		text string
		page int
	}
	var pieces []pieceData
	for _, unit := range units {
		for _, text := range p.splitter.Split(unit.Text) {
			pieces = append(pieces, pieceData{text: text, page: unit.Page})
		}
	}

	if len(pieces) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "filename", filename)
		if err := p.replaceOldChunks(ctx, filename); err != nil {
			return 0, err
		}
		if err := p.docRepo.SetStatus(ctx, filename, storage.StatusIngested, ""); err != nil {
			return 0, fmt.Errorf("failed to update document status: %w", err)
		}
		return 0, nil
	}

	texts := make([]string, len(pieces))
	for i, piece := range pieces {
		texts[i] = piece.text
	}

	// One embedding call for the whole document.
	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", service.ErrEmbeddingService, err)
	}
	if len(embeddings) != len(pieces) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(pieces), len(embeddings))
	}

	chunkRecords := make([]*storage.ChunkRecord, len(pieces))
	points := make([]vectorstore.Point, len(pieces))
	for i, piece := range pieces {
		chunkID := uuid.New().String()

		chunkRecords[i] = &storage.ChunkRecord{
			ID:         chunkID,
			Filename:   filename,
			Page:       piece.page,
			ChunkIndex: i,
		}
		points[i] = vectorstore.Point{
			ID:   chunkID,
			Vec:  embeddings[i],
			Text: piece.text,
			Meta: map[string]any{
				"source":      filename,
				"page":        piece.page,
				"chunk_index": i,
			},
		}
	}

	// Old chunks are removed only once the new embeddings exist, so an
	// embedding failure leaves the previous ingestion intact.
	if err := p.replaceOldChunks(ctx, filename); err != nil {
		return 0, err
	}

	// Single upsert keeps the index atomic per document.
	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return 0, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	for _, record := range chunkRecords {
		if err := p.chunkRepo.Insert(ctx, record); err != nil {
			return 0, fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := p.docRepo.SetStatus(ctx, filename, storage.StatusIngested, ""); err != nil {
		return 0, fmt.Errorf("failed to update document status: %w", err)
	}

	logger.InfoContext(ctx, "ingested document", "filename", filename, "chunks", len(points))
	return len(points), nil
}

// replaceOldChunks removes a previous ingestion of the same document
// from both stores.
func (p *Pipeline) replaceOldChunks(ctx context.Context, filename string) error {
	oldIDs, err := p.chunkRepo.ListIDsByDocument(ctx, filename)
	if err != nil {
		return fmt.Errorf("failed to list old chunk IDs: %w", err)
	}
	if len(oldIDs) == 0 {
		return nil
	}

	if err := p.vectorStore.Delete(ctx, p.collection, oldIDs); err != nil {
		p.getLogger(ctx).WarnContext(ctx, "failed to delete old chunks from vector store",
			"error", err, "count", len(oldIDs))
		// Continue anyway, the new points supersede the old ones.
	}
	if err := p.chunkRepo.DeleteByDocument(ctx, filename); err != nil {
		return fmt.Errorf("failed to delete old chunks: %w", err)
	}
	return nil
}
