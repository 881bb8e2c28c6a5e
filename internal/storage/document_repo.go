package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docqa/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for document registry operations.
type DocumentStore interface {
	// Upsert inserts or replaces a document record.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// SetStatus updates a document's ingestion status and error message.
	SetStatus(ctx context.Context, filename, status, errMsg string) error
	// GetByFilename gets a document by filename. Returns ErrNotFound if absent.
	GetByFilename(ctx context.Context, filename string) (*DocumentRecord, error)
	// List returns all documents ordered by filename.
	List(ctx context.Context) ([]DocumentRecord, error)
	// DeleteAll removes every document record (chunks cascade).
	DeleteAll(ctx context.Context) error
}

// DocumentRepo provides methods for document registry operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Upsert inserts or replaces a document record, refreshing updated_at.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (filename, ext, status, error, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(filename) DO UPDATE SET
			ext = excluded.ext,
			status = excluded.status,
			error = excluded.error,
			updated_at = CURRENT_TIMESTAMP`,
		doc.Filename, doc.Ext, doc.Status, doc.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// SetStatus updates a document's ingestion status and error message.
// Returns ErrNotFound if the document does not exist.
func (r *DocumentRepo) SetStatus(ctx context.Context, filename, status, errMsg string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP WHERE filename = ?",
		status, errMsg, filename,
	)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByFilename gets a document by filename. Returns ErrNotFound if absent.
func (r *DocumentRepo) GetByFilename(ctx context.Context, filename string) (*DocumentRecord, error) {
	var doc DocumentRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT filename, ext, status, error, updated_at FROM documents WHERE filename = ?",
		filename,
	).Scan(&doc.Filename, &doc.Ext, &doc.Status, &doc.Error, &doc.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	return &doc, nil
}

// List returns all documents ordered by filename.
// Returns an empty slice if no documents exist (not an error).
func (r *DocumentRepo) List(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT filename, ext, status, error, updated_at FROM documents ORDER BY filename",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		if err := rows.Scan(&doc.Filename, &doc.Ext, &doc.Status, &doc.Error, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// DeleteAll removes every document record. Chunk rows cascade.
func (r *DocumentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}
