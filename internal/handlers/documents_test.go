package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"docqa/internal/storage"
)

func newDocumentsRouter(t *testing.T) (*chi.Mux, *storage.DocumentRepo) {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	repo := storage.NewDocumentRepo(db)
	handler := NewDocumentsHandler(repo)

	r := chi.NewRouter()
	r.Get("/api/documents", handler.List)
	r.Get("/api/documents/{filename}", handler.Get)
	return r, repo
}

func TestDocumentsHandler_List(t *testing.T) {
	router, repo := newDocumentsRouter(t)
	ctx := context.Background()

	for _, doc := range []*storage.DocumentRecord{
		{Filename: "a.pdf", Ext: ".pdf", Status: storage.StatusIngested},
		{Filename: "b.docx", Ext: ".docx", Status: storage.StatusFailed, Error: "corrupt container"},
	} {
		if err := repo.Upsert(ctx, doc); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp DocumentListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(resp.Documents))
	}
	if resp.Documents[0].Filename != "a.pdf" || resp.Documents[0].Status != storage.StatusIngested {
		t.Errorf("first document = %+v", resp.Documents[0])
	}
	if resp.Documents[1].Error != "corrupt container" {
		t.Errorf("failed document error = %q, want recorded reason", resp.Documents[1].Error)
	}
}

func TestDocumentsHandler_Get(t *testing.T) {
	router, repo := newDocumentsRouter(t)

	doc := &storage.DocumentRecord{Filename: "a.pdf", Ext: ".pdf", Status: storage.StatusPending}
	if err := repo.Upsert(context.Background(), doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents/a.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp DocumentStatus
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != storage.StatusPending {
		t.Errorf("status = %q, want %q", resp.Status, storage.StatusPending)
	}
}

func TestDocumentsHandler_Get_NotFound(t *testing.T) {
	router, _ := newDocumentsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/missing.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
