package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/matches-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin and stream may be nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, stream nethttp.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
	mux.HandleFunc("GET /matches", handler.ListMatches)
	mux.HandleFunc("POST /matches", handler.CreateMatch)
	mux.HandleFunc("PUT /matches", handler.ReplaceMatches)
	mux.HandleFunc("PUT /matches/{id}", handler.UpdateMatch)
	mux.HandleFunc("DELETE /matches/{id}", handler.DeleteMatch)
	if stream != nil {
		mux.Handle("GET /matches/stream", stream)
	}
	if admin != nil {
		mux.HandleFunc("POST /admin/reload", admin.Reload)
	}
	return mux
}
