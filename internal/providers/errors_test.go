package providers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "matchapi", StatusCode: 500, Body: "boom"}
	if got := err.Error(); !strings.Contains(got, "500") || !strings.Contains(got, "boom") {
		t.Fatalf("unexpected error string %q", got)
	}
	if got := (&StatusError{Provider: "matchapi", StatusCode: 503}).Error(); strings.HasSuffix(got, ": ") {
		t.Fatalf("expected no trailing separator, got %q", got)
	}

	st, ok := AsStatusError(fmt.Errorf("wrapped: %w", err))
	if !ok || st.StatusCode != 500 {
		t.Fatalf("expected to unwrap status error, got %+v", st)
	}
	if _, ok := AsStatusError(errors.New("plain")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrMatchNotFound, ErrProviderUnavailable) {
		t.Fatalf("expected distinct sentinels")
	}
}
