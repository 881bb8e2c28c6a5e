// Package http wires the request handlers into a chi router with the
// service's middleware stack.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docqa/internal/handlers"
	"docqa/internal/service"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService   service.ChatService
	UploadService service.UploadService
	ResetService  service.ResetService
	Documents     storage.DocumentStore
	VectorStore   vectorstore.VectorStore
	Collection    string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	uploadHandler := handlers.NewUploadHandler(deps.UploadService)
	resetHandler := handlers.NewResetHandler(deps.ResetService)
	documentsHandler := handlers.NewDocumentsHandler(deps.Documents)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/upload", uploadHandler)
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodDelete, "/reset", resetHandler)
		r.Get("/documents", documentsHandler.List)
		r.Get("/documents/{filename}", documentsHandler.Get)
	})

	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
