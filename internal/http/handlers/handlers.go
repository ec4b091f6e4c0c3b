package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/matchstore"
)

// MatchStore is the part of *matchstore.Store the HTTP layer depends on.
type MatchStore interface {
	State() matchstore.State
	Add(ctx context.Context, m matches.Match) (matches.Match, error)
	Update(ctx context.Context, m matches.Match) (matches.Match, error)
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, list []matches.Match) error
}

// Handler wires HTTP routes to the match store.
type Handler struct {
	store   MatchStore
	logger  *slog.Logger
	readyFn func() bool
}

// NewHandler constructs a Handler. readyFn may be nil, meaning always ready.
func NewHandler(store MatchStore, logger *slog.Logger, readyFn func() bool) *Handler {
	return &Handler{
		store:   store,
		logger:  logger,
		readyFn: readyFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness once the initial load has finished.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.readyFn == nil || h.readyFn() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, "initial load in progress", h.logger)
}

// ListMatches returns the full published state.
func (h *Handler) ListMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	st := h.store.State()
	logging.Debug(loggerFromContext(r, h.logger), "served matches",
		slog.Int(logging.FieldCount, len(st.Matches)),
		slog.Bool("api_available", st.IsAPIAvailable),
	)
	writeJSON(w, nethttp.StatusOK, st, h.logger)
}

// CreateMatch adds a match through the remote provider.
func (h *Handler) CreateMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	var m matches.Match
	if err := decodeBody(w, r, &m); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match body", logger)
		return
	}

	created, err := h.store.Add(r.Context(), m)
	if err != nil {
		writeProviderError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, created, logger)
}

// UpdateMatch replaces a match through the remote provider.
func (h *Handler) UpdateMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := matchID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", logger)
		return
	}
	var m matches.Match
	if err := decodeBody(w, r, &m); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match body", logger)
		return
	}
	if m.ID == "" {
		m.ID = id
	}
	if m.ID != id {
		writeError(w, r, nethttp.StatusBadRequest, "match id does not match path", logger)
		return
	}

	updated, err := h.store.Update(r.Context(), m)
	if err != nil {
		writeProviderError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, updated, logger)
}

// DeleteMatch removes a match through the remote provider.
func (h *Handler) DeleteMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := matchID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", logger)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeProviderError(w, r, err, logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// ReplaceMatches overwrites the local copy and the published list with the body.
func (h *Handler) ReplaceMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	var list []matches.Match
	if err := decodeBody(w, r, &list); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "expected a JSON array of matches", logger)
		return
	}
	if list == nil {
		list = []matches.Match{}
	}

	if err := h.store.Replace(r.Context(), list); err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, "failed to save matches", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.store.State(), logger)
}

func matchID(r *nethttp.Request) (string, bool) {
	id, err := url.PathUnescape(r.PathValue("id"))
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		return "", false
	}
	return id, true
}
