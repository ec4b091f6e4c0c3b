package matchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/providers"
)

// Config controls how the client reaches the matches API.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the matches REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// FetchMatches retrieves the full match list.
func (c *Client) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	var body json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/matches", nil, &body); err != nil {
		return nil, err
	}
	return decodeList(body)
}

// AddMatch creates a match and returns the stored record.
func (c *Client) AddMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	var body json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/matches", m, &body); err != nil {
		return matches.Match{}, err
	}
	return decodeOne(body)
}

// UpdateMatch replaces a match and returns the stored record.
func (c *Client) UpdateMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	var body json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/matches/"+url.PathEscape(m.ID), m, &body); err != nil {
		return matches.Match{}, err
	}
	return decodeOne(body)
}

// DeleteMatch removes a match by id.
func (c *Client) DeleteMatch(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/matches/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in any, out *json.RawMessage) error {
	req, err := c.buildRequest(ctx, method, path, in)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	*out = raw
	return nil
}

func (c *Client) buildRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	body := strings.TrimSpace(string(snippet))

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    body,
		}
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", providerName, providers.ErrMatchNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", providerName, providers.ErrMatchExists)
	}
	return &providers.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: body}
}
