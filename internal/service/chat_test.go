package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"docqa/internal/llm"
	"docqa/internal/rag"
	"docqa/internal/service"
	"docqa/internal/service/mocks"
)

func init() {
	// Quiet the default logger used by the service layer.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestChatService_Ask(t *testing.T) {
	history := []rag.Turn{{Role: "user", Content: "earlier question"}}

	tests := []struct {
		name       string
		question   string
		mockSetup  func(engine *mocks.MockEngine)
		wantAnswer rag.Answer
		wantErr    error
		wantValErr bool
	}{
		{
			name:     "successful answer",
			question: "What was the 2023 revenue?",
			mockSetup: func(engine *mocks.MockEngine) {
				engine.EXPECT().
					Answer(gomock.Any(), "What was the 2023 revenue?", history).
					Return(rag.Answer{Text: "$10M", Sources: []string{"report.pdf (Page 1)"}}, nil)
			},
			wantAnswer: rag.Answer{Text: "$10M", Sources: []string{"report.pdf (Page 1)"}},
		},
		{
			name:       "empty question",
			question:   "   ",
			mockSetup:  func(engine *mocks.MockEngine) {},
			wantValErr: true,
		},
		{
			name:     "completion timeout",
			question: "slow question",
			mockSetup: func(engine *mocks.MockEngine) {
				engine.EXPECT().
					Answer(gomock.Any(), "slow question", history).
					Return(rag.Answer{}, llm.ErrTimeout)
			},
			wantErr: service.ErrGenerationTimeout,
		},
		{
			name:     "index unreachable",
			question: "a question",
			mockSetup: func(engine *mocks.MockEngine) {
				engine.EXPECT().
					Answer(gomock.Any(), "a question", history).
					Return(rag.Answer{}, rag.ErrSearch)
			},
			wantErr: service.ErrIndexUnavailable,
		},
		{
			name:     "embedding outage degrades",
			question: "a question",
			mockSetup: func(engine *mocks.MockEngine) {
				engine.EXPECT().
					Answer(gomock.Any(), "a question", history).
					Return(rag.Answer{}, rag.ErrEmbedding)
			},
			wantAnswer: rag.Answer{Text: service.DegradedAnswer, Sources: []string{}},
		},
		{
			name:     "completion outage degrades",
			question: "a question",
			mockSetup: func(engine *mocks.MockEngine) {
				engine.EXPECT().
					Answer(gomock.Any(), "a question", history).
					Return(rag.Answer{}, llm.ErrUnavailable)
			},
			wantAnswer: rag.Answer{Text: service.DegradedAnswer, Sources: []string{}},
		},
		{
			name:     "unclassified failure",
			question: "a question",
			mockSetup: func(engine *mocks.MockEngine) {
				engine.EXPECT().
					Answer(gomock.Any(), "a question", history).
					Return(rag.Answer{}, errors.New("something odd"))
			},
			wantErr: service.ErrGenerationService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			engine := mocks.NewMockEngine(ctrl)
			tt.mockSetup(engine)

			svc := service.NewChatService(engine, time.Minute)
			answer, err := svc.Ask(context.Background(), tt.question, history)

			if tt.wantValErr {
				var valErr *service.ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("Ask() error = %v, want *ValidationError", err)
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Ask() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Ask() unexpected error: %v", err)
			}
			if answer.Text != tt.wantAnswer.Text {
				t.Errorf("answer = %q, want %q", answer.Text, tt.wantAnswer.Text)
			}
			if len(answer.Sources) != len(tt.wantAnswer.Sources) {
				t.Errorf("sources = %v, want %v", answer.Sources, tt.wantAnswer.Sources)
			}
		})
	}
}

func TestChatService_Ask_DeadlinePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)

	// The engine sees a context with the generation deadline applied.
	engine.EXPECT().
		Answer(gomock.Any(), "q", gomock.Nil()).
		DoAndReturn(func(ctx context.Context, _ string, _ []rag.Turn) (rag.Answer, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("engine context has no deadline")
			}
			return rag.Answer{Text: "ok", Sources: []string{}}, nil
		})

	svc := service.NewChatService(engine, 50*time.Millisecond)
	if _, err := svc.Ask(context.Background(), "q", nil); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
}
