package router

import (
	"net/http"

	"items-api/internal/handler"
	"items-api/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(itemHandler *handler.ItemHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", itemHandler.NotFound)
	mux.HandleFunc("/{$}", itemHandler.Root)
	mux.HandleFunc("/health", itemHandler.Health)

	// Register item routes (both with and without trailing slash)
	mux.HandleFunc("/items", itemHandler.Collection)
	mux.HandleFunc("/items/{$}", itemHandler.Collection)
	mux.HandleFunc("/items/{id}", itemHandler.Member)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
