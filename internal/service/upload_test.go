package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/extract"
	"docqa/internal/service"
	"docqa/internal/service/mocks"
	"docqa/internal/storage"
)

func newUploadFixture(t *testing.T) (service.UploadService, *storage.FileStore, *mocks.MockIngestor) {
	t.Helper()

	files, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	ctrl := gomock.NewController(t)
	ingestor := mocks.NewMockIngestor(ctrl)

	svc := service.NewUploadService(files, extract.NewRegistry(), ingestor)
	return svc, files, ingestor
}

func TestUploadService_Accept_NewFile(t *testing.T) {
	svc, files, ingestor := newUploadFixture(t)

	ingestor.EXPECT().Enqueue(gomock.Any(), "report.pdf").Return(nil)

	status, err := svc.Accept(context.Background(), "report.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if status != service.UploadStatusAccepted {
		t.Errorf("status = %q, want %q", status, service.UploadStatusAccepted)
	}

	data, err := files.Read("report.pdf")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("cached content = %q, want the upload body", data)
	}
}

func TestUploadService_Accept_CachedFileStillReingests(t *testing.T) {
	svc, files, ingestor := newUploadFixture(t)

	if err := files.Save("report.pdf", []byte("original")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Cached upload skips the save but still queues a re-ingest.
	ingestor.EXPECT().Enqueue(gomock.Any(), "report.pdf").Return(nil)

	status, err := svc.Accept(context.Background(), "report.pdf", strings.NewReader("new body"))
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if status != service.UploadStatusCached {
		t.Errorf("status = %q, want %q", status, service.UploadStatusCached)
	}

	data, err := files.Read("report.pdf")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != "original" {
		t.Errorf("cached content = %q, want the original to be kept", data)
	}
}

func TestUploadService_Accept_UnsupportedType(t *testing.T) {
	svc, files, _ := newUploadFixture(t)

	_, err := svc.Accept(context.Background(), "notes.txt", strings.NewReader("text"))

	var unsupported *extract.UnsupportedFileTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Accept() error = %v, want *UnsupportedFileTypeError", err)
	}
	if unsupported.Ext != ".txt" {
		t.Errorf("Ext = %q, want .txt", unsupported.Ext)
	}
	if files.Exists("notes.txt") {
		t.Error("unsupported file was cached")
	}
}

func TestUploadService_Accept_EmptyFilename(t *testing.T) {
	svc, _, _ := newUploadFixture(t)

	_, err := svc.Accept(context.Background(), "  ", strings.NewReader("x"))

	var valErr *service.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("Accept() error = %v, want *ValidationError", err)
	}
}

func TestUploadService_Accept_StripsPathComponents(t *testing.T) {
	svc, files, ingestor := newUploadFixture(t)

	ingestor.EXPECT().Enqueue(gomock.Any(), "report.pdf").Return(nil)

	if _, err := svc.Accept(context.Background(), "../../tmp/report.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if !files.Exists("report.pdf") {
		t.Error("file not stored under its basename")
	}
}
