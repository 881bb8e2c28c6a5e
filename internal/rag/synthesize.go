package rag

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/llm"
)

// qaPrompt answers from retrieved context. The context block is appended
// at synthesis time.
const qaPrompt = "You are an assistant for question-answering tasks. " +
	"Use the following pieces of retrieved context to answer the question. " +
	"Be direct and only include information relevant to the question. " +
	"Keep the answer concise and use bullet points when listing multiple items."

// generalPrompt is used when no retrieved context is relevant to the question.
const generalPrompt = "You are a helpful assistant. The user's documents contain " +
	"no information relevant to this question, so answer briefly from general " +
	"knowledge. Keep the answer concise."

// smallTalkPrompt handles greetings without any document context.
const smallTalkPrompt = "You are a friendly assistant. Reply briefly and politely " +
	"to the user's greeting."

// synthesisResult is what the synthesizer hands back to the engine:
// the raw model text, the chunks actually placed in the prompt, and
// whether the retrieved context was judged irrelevant.
type synthesisResult struct {
	Text              string
	UsedChunks        []ScoredChunk
	ContextIrrelevant bool
}

// synthesizeSmallTalk answers a greeting directly, with no sources.
func (e *engine) synthesizeSmallTalk(ctx context.Context, question string) (Answer, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: smallTalkPrompt},
		{Role: llm.RoleUser, Content: question},
	}

	text, err := e.completer.Complete(ctx, messages)
	if err != nil {
		return Answer{}, fmt.Errorf("small talk completion: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		text = FallbackAnswer
	}

	return Answer{Text: strings.TrimSpace(text), Sources: []string{}}, nil
}

// synthesize generates the answer. If no chunk clears the relevance
// threshold the prompt degrades to general knowledge and no chunks are
// marked as used.
func (e *engine) synthesize(ctx context.Context, question string, history []Turn, chunks []ScoredChunk) (synthesisResult, error) {
	relevant := relevantChunks(chunks, e.threshold)

	var result synthesisResult
	var system string
	if len(relevant) == 0 {
		result.ContextIrrelevant = true
		system = generalPrompt
	} else {
		result.UsedChunks = relevant
		system = qaPrompt + "\n\n" + formatContext(relevant)
	}

	messages := make([]llm.Message, 0, e.window+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, turn := range lastTurns(history, e.window) {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	text, err := e.completer.Complete(ctx, messages)
	if err != nil {
		return synthesisResult{}, fmt.Errorf("answer completion: %w", err)
	}

	result.Text = text
	return result, nil
}

// relevantChunks keeps the chunks at or above the similarity threshold.
func relevantChunks(chunks []ScoredChunk, threshold float32) []ScoredChunk {
	var kept []ScoredChunk
	for _, chunk := range chunks {
		if chunk.Score >= threshold {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// formatContext renders the chunks as the context block of the prompt.
func formatContext(chunks []ScoredChunk) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	for _, chunk := range chunks {
		fmt.Fprintf(&b, "[%s, page %d]\n%s\n\n", chunk.Source, chunk.Page+1, chunk.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
