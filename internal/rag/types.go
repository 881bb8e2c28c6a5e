// Package rag answers questions over indexed documents: it reformulates
// the question against the conversation history, retrieves similar
// chunks from the vector store and synthesizes a grounded answer with
// source attribution.
package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks docqa/internal/rag Embedder,Completer

import (
	"context"

	"docqa/internal/llm"
)

// Turn is one prior exchange in a conversation.
type Turn struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`
	// Content is the message text.
	Content string `json:"content"`
}

// ScoredChunk is a retrieved chunk with its similarity score and origin.
type ScoredChunk struct {
	Text   string
	Source string // Document basename, e.g. "report.pdf"
	Page   int    // 0-based page within the document
	Score  float32
}

// Answer is a synthesized answer with its deduplicated source labels.
type Answer struct {
	Text    string
	Sources []string
}

// Embedder turns texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer generates a chat completion for a message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}
