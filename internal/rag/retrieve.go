package rag

import (
	"context"
	"fmt"
)

// Retrieve embeds the query and returns the k most similar chunks,
// ranked by the store. An empty index yields an empty slice, not an error.
func (e *engine) Retrieve(ctx context.Context, query string, k int) ([]ScoredChunk, error) {
	embeddings, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", ErrEmbedding)
	}

	results, err := e.store.Search(ctx, e.collection, embeddings[0], k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}

	chunks := make([]ScoredChunk, 0, len(results))
	for _, result := range results {
		source, _ := result.Meta["source"].(string)

		chunks = append(chunks, ScoredChunk{
			Text:   result.Text,
			Source: source,
			Page:   metaPage(result.Meta["page"]),
			Score:  result.Score,
		})
	}

	return chunks, nil
}

// metaPage normalizes the page payload value. Qdrant returns integer
// payloads as int64; JSON round-trips produce float64.
func metaPage(v any) int {
	switch page := v.(type) {
	case int64:
		return int(page)
	case float64:
		return int(page)
	case int:
		return page
	}
	return 0
}
