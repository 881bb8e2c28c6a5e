package rag

import (
	"context"

	"docqa/internal/llm"
)

// contextualizePrompt rewrites a follow-up question into a standalone one.
const contextualizePrompt = "Given a chat history and the latest user question " +
	"which might reference context in the chat history, " +
	"formulate a standalone question which can be understood " +
	"without the chat history. Do NOT answer the question, " +
	"just reformulate it if needed and otherwise return it as is."

// Reformulate turns a follow-up question into a standalone one using the
// last turns of the conversation. With no history, or when the model
// fails, the raw question is returned unchanged.
func (e *engine) Reformulate(ctx context.Context, question string, history []Turn) string {
	if len(history) == 0 {
		return question
	}

	messages := make([]llm.Message, 0, e.window+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: contextualizePrompt})
	for _, turn := range lastTurns(history, e.window) {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	standalone, err := e.completer.Complete(ctx, messages)
	if err != nil {
		e.getLogger(ctx).WarnContext(ctx, "reformulation failed, using raw question", "error", err)
		return question
	}
	if standalone == "" {
		return question
	}
	return standalone
}

// lastTurns returns the trailing n turns of the history.
func lastTurns(history []Turn, n int) []Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
