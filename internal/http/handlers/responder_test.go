package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/matches-service/internal/providers"
	"github.com/preston-bernstein/matches-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	writeError(rr, req, http.StatusBadRequest, "bad", nil)
	if strings.Contains(rr.Body.String(), "requestId") {
		t.Fatalf("expected no requestId field, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteProviderErrorMapsStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("wrap: %w", providers.ErrMatchNotFound), http.StatusNotFound},
		{"exists", providers.ErrMatchExists, http.StatusConflict},
		{"unavailable", providers.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"status", &providers.StatusError{Provider: "matchapi", StatusCode: 500}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/matches", nil)
			writeProviderError(rr, req, tc.err, nil)
			testutil.AssertStatus(t, rr, tc.want)
		})
	}
}

func TestWriteProviderErrorSetsRetryAfter(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/matches", nil)
	err := &providers.RateLimitError{Provider: "matchapi", RetryAfter: 30 * time.Second}

	writeProviderError(rr, req, err, nil)

	testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
	if got := rr.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30, got %q", got)
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	fallback, _ := testutil.NewBufferLogger()
	if got := loggerFromContext(nil, fallback); got != fallback {
		t.Fatalf("expected fallback for nil request")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := loggerFromContext(req, fallback); got != fallback {
		t.Fatalf("expected fallback when context has no logger")
	}
}
