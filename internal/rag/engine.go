package rag

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/vectorstore"
)

// Stage sentinels so callers can tell which dependency failed.
// Completion errors pass through wrapping llm.ErrTimeout / llm.ErrUnavailable.
var (
	// ErrEmbedding indicates the query could not be embedded.
	ErrEmbedding = errors.New("query embedding failed")
	// ErrSearch indicates the vector store could not be searched.
	ErrSearch = errors.New("vector search failed")
)

// FallbackAnswer is returned when the model produces an empty answer.
const FallbackAnswer = "No specific information was found in the documents, and no general answer is available right now."

// Defaults for the engine's tuning knobs.
const (
	DefaultRetrieveK          = 3
	DefaultHistoryWindow      = 3
	DefaultRelevanceThreshold = float32(0.35)
)

// smallTalk holds greetings answered without touching the index.
var smallTalk = map[string]struct{}{
	"hi":        {},
	"hello":     {},
	"hey":       {},
	"thanks":    {},
	"thank you": {},
}

// Engine answers questions over the indexed documents.
type Engine interface {
	// Answer answers a question using the conversation history for context.
	Answer(ctx context.Context, question string, history []Turn) (Answer, error)
}

// Config carries the engine's tuning knobs. Zero values fall back to
// the defaults above.
type Config struct {
	Collection         string
	RetrieveK          int
	HistoryWindow      int
	RelevanceThreshold float32
}

// engine implements the Engine interface.
type engine struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	completer  Completer
	collection string
	k          int
	window     int
	threshold  float32
}

// NewEngine creates a new answering engine.
func NewEngine(embedder Embedder, store vectorstore.VectorStore, completer Completer, cfg Config) Engine {
	if cfg.RetrieveK <= 0 {
		cfg.RetrieveK = DefaultRetrieveK
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	if cfg.RelevanceThreshold <= 0 {
		cfg.RelevanceThreshold = DefaultRelevanceThreshold
	}
	return &engine{
		embedder:   embedder,
		store:      store,
		completer:  completer,
		collection: cfg.Collection,
		k:          cfg.RetrieveK,
		window:     cfg.HistoryWindow,
		threshold:  cfg.RelevanceThreshold,
	}
}

func (e *engine) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

// isSmallTalk reports whether the question is a bare greeting.
func isSmallTalk(question string) bool {
	_, ok := smallTalk[strings.ToLower(strings.TrimSpace(question))]
	return ok
}

// Answer orchestrates reformulate, retrieve, synthesize and attribute.
func (e *engine) Answer(ctx context.Context, question string, history []Turn) (Answer, error) {
	logger := e.getLogger(ctx)

	if isSmallTalk(question) {
		logger.InfoContext(ctx, "small talk detected, skipping retrieval", "question", question)
		return e.synthesizeSmallTalk(ctx, question)
	}

	query := e.Reformulate(ctx, question, history)
	if query != question {
		logger.InfoContext(ctx, "question reformulated", "original", question, "standalone", query)
	}

	chunks, err := e.Retrieve(ctx, query, e.k)
	if err != nil {
		return Answer{}, err
	}

	result, err := e.synthesize(ctx, question, history, chunks)
	if err != nil {
		return Answer{}, err
	}

	answer := strings.TrimSpace(result.Text)
	if answer == "" {
		logger.WarnContext(ctx, "model returned empty answer, using fallback")
		answer = FallbackAnswer
	}

	sources := AttributeSources(result.UsedChunks)
	logger.InfoContext(ctx, "question answered",
		"chunks_retrieved", len(chunks),
		"chunks_used", len(result.UsedChunks),
		"context_irrelevant", result.ContextIrrelevant,
		"sources", len(sources),
	)

	return Answer{Text: answer, Sources: sources}, nil
}
