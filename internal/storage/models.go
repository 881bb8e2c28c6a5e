package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Ingestion status values for a document.
const (
	StatusPending  = "pending"
	StatusIngested = "ingested"
	StatusFailed   = "failed"
)

// DocumentRecord represents an uploaded document in the database.
// The filename (basename of the upload) is the primary key.
type DocumentRecord struct {
	Filename  string
	Ext       string // Lowercased extension, e.g. ".pdf"
	Status    string // One of StatusPending, StatusIngested, StatusFailed
	Error     string // Failure reason when Status is StatusFailed
	UpdatedAt time.Time
}

// ChunkRecord maps an indexed chunk back to its document.
type ChunkRecord struct {
	ID         string // UUID (same as the vector store point ID)
	Filename   string // Foreign key to documents.filename
	Page       int    // 0-based page the chunk came from
	ChunkIndex int    // Index within the document (starts at 0)
}
