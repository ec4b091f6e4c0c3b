package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/matches-service/internal/http/requestutil"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/matchstore"
)

// Reloader reruns the full load against the remote provider.
type Reloader interface {
	Load(ctx context.Context)
	State() matchstore.State
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	store  Reloader
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. It returns nil when token is empty.
func NewAdminHandler(store Reloader, token string, logger *slog.Logger) *AdminHandler {
	if token == "" {
		return nil
	}
	return &AdminHandler{
		store:  store,
		token:  token,
		logger: logger,
	}
}

// Reload refetches from the remote provider, the only way to clear the
// unavailable flag. Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "store not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	h.store.Load(r.Context())
	st := h.store.State()

	logging.Info(logger, "admin reload finished",
		slog.Int(logging.FieldCount, len(st.Matches)),
		slog.Bool("api_available", st.IsAPIAvailable),
	)
	writeJSON(w, http.StatusOK, st, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h == nil || h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
