package llm

import "errors"

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrTimeout is returned when a model call exceeds its deadline.
	ErrTimeout = errors.New("llm request timed out")
	// ErrUnavailable is returned when the model service cannot be reached
	// or responds with a server error.
	ErrUnavailable = errors.New("llm service unavailable")
)
