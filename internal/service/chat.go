package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks -mock_names=ChatService=MockChatService,UploadService=MockUploadService,ResetService=MockResetService docqa/internal/service ChatService,UploadService,ResetService,Ingestor
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks -mock_names=Engine=MockEngine docqa/internal/rag Engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
	"docqa/internal/rag"
)

// DegradedAnswer is returned when the answering services are down but
// the request itself was valid.
const DegradedAnswer = "I'm temporarily unable to answer questions right now. Please try again in a moment."

// DefaultGenerationTimeout bounds one answer generation end to end.
const DefaultGenerationTimeout = 60 * time.Second

// ChatService answers questions over the ingested documents.
type ChatService interface {
	// Ask answers a question, using the conversation history for context.
	Ask(ctx context.Context, question string, history []rag.Turn) (rag.Answer, error)
}

// chatService implements ChatService.
type chatService struct {
	engine  rag.Engine
	timeout time.Duration
}

// NewChatService creates a new ChatService with the given generation
// timeout. A non-positive timeout falls back to the default.
func NewChatService(engine rag.Engine, timeout time.Duration) ChatService {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &chatService{
		engine:  engine,
		timeout: timeout,
	}
}

func (s *chatService) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

// Ask validates the question, bounds generation with the timeout and
// maps downstream failures: timeouts surface as ErrGenerationTimeout,
// an unreachable index as ErrIndexUnavailable, and embedding or
// completion outages degrade to a canned answer instead of an error.
func (s *chatService) Ask(ctx context.Context, question string, history []rag.Turn) (rag.Answer, error) {
	logger := s.getLogger(ctx)

	if strings.TrimSpace(question) == "" {
		logger.WarnContext(ctx, "empty question in chat request")
		return rag.Answer{}, &ValidationError{
			Field:   "question",
			Message: "cannot be empty",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.engine.Answer(ctx, question, history)
	if err == nil {
		return answer, nil
	}

	switch {
	case errors.Is(err, llm.ErrTimeout) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		logger.ErrorContext(ctx, "answer generation timed out", "error", err)
		return rag.Answer{}, WrapError(ErrGenerationTimeout, err.Error())
	case errors.Is(err, rag.ErrSearch):
		logger.ErrorContext(ctx, "vector index unavailable", "error", err)
		return rag.Answer{}, WrapError(ErrIndexUnavailable, err.Error())
	case errors.Is(err, rag.ErrEmbedding):
		logger.ErrorContext(ctx, "embedding service unavailable, degrading answer",
			"error", WrapError(ErrEmbeddingService, err.Error()))
		return rag.Answer{Text: DegradedAnswer, Sources: []string{}}, nil
	case errors.Is(err, llm.ErrUnavailable):
		logger.ErrorContext(ctx, "completion service unavailable, degrading answer", "error", err)
		return rag.Answer{Text: DegradedAnswer, Sources: []string{}}, nil
	default:
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		return rag.Answer{}, WrapError(ErrGenerationService, err.Error())
	}
}
