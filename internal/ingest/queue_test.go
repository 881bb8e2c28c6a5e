package ingest

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/storage"
)

func TestQueue_EnqueueAndDrain(t *testing.T) {
	f := newPipelineFixture(t)
	ctx := context.Background()

	if err := f.files.Save("report.md", []byte("Revenue grew by 12%.\n")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).DoAndReturn(embedAnyTexts)
	f.vectorStore.EXPECT().Upsert(gomock.Any(), "documents", gomock.Any()).Return(nil)

	q := NewQueue(f.pipeline, 4)
	if err := q.Enqueue(ctx, "report.md"); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	// Enqueue marks pending before the worker picks the job up.
	doc, err := f.docRepo.GetByFilename(ctx, "report.md")
	if err != nil {
		t.Fatalf("GetByFilename() error = %v", err)
	}
	if doc.Status != storage.StatusPending && doc.Status != storage.StatusIngested {
		t.Errorf("status right after enqueue = %q", doc.Status)
	}

	q.Close()

	doc, err = f.docRepo.GetByFilename(ctx, "report.md")
	if err != nil {
		t.Fatalf("GetByFilename() error = %v", err)
	}
	if doc.Status != storage.StatusIngested {
		t.Errorf("status after drain = %q, want %q", doc.Status, storage.StatusIngested)
	}
}

func TestQueue_FailedIngestionRecordsError(t *testing.T) {
	f := newPipelineFixture(t)
	ctx := context.Background()

	// .txt has no extractor, so the worker must mark the document failed.
	if err := f.files.Save("notes.txt", []byte("plain text")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	q := NewQueue(f.pipeline, 4)
	if err := q.Enqueue(ctx, "notes.txt"); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	q.Close()

	doc, err := f.docRepo.GetByFilename(ctx, "notes.txt")
	if err != nil {
		t.Fatalf("GetByFilename() error = %v", err)
	}
	if doc.Status != storage.StatusFailed {
		t.Errorf("status = %q, want %q", doc.Status, storage.StatusFailed)
	}
	if doc.Error == "" {
		t.Error("failure reason not recorded")
	}
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	f := newPipelineFixture(t)

	q := NewQueue(f.pipeline, 4)
	q.Close()
	// Closing twice is safe.
	q.Close()

	if err := q.Enqueue(context.Background(), "late.md"); err == nil {
		t.Error("Enqueue() after Close expected error, got nil")
	}
}
