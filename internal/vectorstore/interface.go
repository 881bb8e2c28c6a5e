package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docqa/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with its chunk text and metadata.
type Point struct {
	ID   string
	Vec  []float32
	Text string
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Text    string
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search, ranked by descending score.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// ListIDs returns the IDs of all points in the collection.
	ListIDs(ctx context.Context, collection string) ([]string, error)

	// Count returns the number of points in the collection.
	Count(ctx context.Context, collection string) (int, error)

	// DeleteCollection drops the collection entirely.
	DeleteCollection(ctx context.Context, collection string) error

	// EnsureCollection creates the collection if missing and validates
	// its vector size, leaving it immediately queryable.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
}
