package storage

import (
	"context"
	"fmt"
	"testing"
)

func seedDocument(t *testing.T, repo *DocumentRepo, filename string) {
	t.Helper()
	doc := &DocumentRecord{Filename: filename, Ext: ".pdf", Status: StatusPending}
	if err := repo.Upsert(context.Background(), doc); err != nil {
		t.Fatalf("Upsert(%s) error = %v", filename, err)
	}
}

func TestChunkRepo_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	docRepo := NewDocumentRepo(db)
	repo := NewChunkRepo(db)
	ctx := context.Background()

	seedDocument(t, docRepo, "a.pdf")

	// Insert out of order; ListIDsByDocument must sort by chunk_index.
	for _, idx := range []int{2, 0, 1} {
		chunk := &ChunkRecord{
			ID:         fmt.Sprintf("chunk-%d", idx),
			Filename:   "a.pdf",
			Page:       idx,
			ChunkIndex: idx,
		}
		if err := repo.Insert(ctx, chunk); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	ids, err := repo.ListIDsByDocument(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}
	want := []string{"chunk-0", "chunk-1", "chunk-2"}
	if len(ids) != len(want) {
		t.Fatalf("ListIDsByDocument() returned %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	n, err := repo.CountByDocument(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("CountByDocument() error = %v", err)
	}
	if n != 3 {
		t.Errorf("CountByDocument() = %d, want 3", n)
	}
}

func TestChunkRepo_DeleteByDocument(t *testing.T) {
	db := newTestDB(t)
	docRepo := NewDocumentRepo(db)
	repo := NewChunkRepo(db)
	ctx := context.Background()

	seedDocument(t, docRepo, "a.pdf")
	seedDocument(t, docRepo, "b.pdf")

	for i, filename := range []string{"a.pdf", "a.pdf", "b.pdf"} {
		chunk := &ChunkRecord{
			ID:         fmt.Sprintf("chunk-%d", i),
			Filename:   filename,
			ChunkIndex: i,
		}
		if err := repo.Insert(ctx, chunk); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	if err := repo.DeleteByDocument(ctx, "a.pdf"); err != nil {
		t.Fatalf("DeleteByDocument() error = %v", err)
	}

	ids, err := repo.ListIDsByDocument(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("a.pdf still has %d chunks after delete, want 0", len(ids))
	}

	// Other documents are untouched.
	ids, err = repo.ListIDsByDocument(ctx, "b.pdf")
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("b.pdf has %d chunks, want 1", len(ids))
	}
}

func TestChunkRepo_ListIDsByDocument_Empty(t *testing.T) {
	repo := NewChunkRepo(newTestDB(t))

	ids, err := repo.ListIDsByDocument(context.Background(), "nothing.pdf")
	if err != nil {
		t.Fatalf("ListIDsByDocument() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ListIDsByDocument() returned %d ids, want 0", len(ids))
	}
}
