package requestutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	got := NewRequestID()
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected uuid request id, got %s", got)
	}
	if !requestIDPattern.MatchString(got) {
		t.Fatalf("expected generated id to satisfy the pattern, got %s", got)
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	fallback := NewRequestID()
	if fallback == "" || !requestIDPattern.MatchString(fallback) {
		t.Fatalf("expected valid fallback request id, got %q", fallback)
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}
	cases := map[string]string{
		"":              "",
		"Bearer":        "",
		"Bearer ":       "",
		"Basic abc":     "",
		"Bearer secret": "secret",
		"bearer secret": "secret",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		if got := BearerToken(req); got != want {
			t.Fatalf("header %q: expected %q, got %q", header, want, got)
		}
	}
}
