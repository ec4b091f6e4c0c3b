package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/matches-service/internal/http/middleware"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/providers"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeProviderError maps a failed remote mutation onto an HTTP status.
func writeProviderError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if rl, ok := providers.AsRateLimitError(err); ok {
		if secs := int(rl.RetryAfter.Seconds()); secs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
		writeError(w, r, http.StatusTooManyRequests, "upstream rate limited", logger)
		return
	}

	switch {
	case errors.Is(err, providers.ErrMatchNotFound):
		writeError(w, r, http.StatusNotFound, "match not found", logger)
	case errors.Is(err, providers.ErrMatchExists):
		writeError(w, r, http.StatusConflict, "match already exists", logger)
	case errors.Is(err, providers.ErrProviderUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "matches api unavailable", logger)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "matches api timed out", logger)
	default:
		writeError(w, r, http.StatusBadGateway, "matches api request failed", logger)
	}
}

// decodeBody reads a JSON body of at most maxBodyBytes into dest.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dest)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
