// Package apiclient is the typed client for the laundromat REST API. One
// shared base client carries the session cookie jar, the client-type
// discriminator header and per-request IDs; the per-resource files expose
// the typed operations so no page builds its own requests.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/laundromat-id/adminctl/internal/pkg/telemetry"
)

const clientType = "cli"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http    *http.Client
	baseURL string
}

// New builds a client with its own cookie jar. The server issues
// credential-bearing session cookies on login; the client never manages
// tokens itself.
func New(cfg Config) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// do performs one JSON request. A non-2xx response becomes an *APIError
// carrying the server's message verbatim when it sent one.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Type", clientType)
	req.Header.Set("X-Request-Id", requestID)

	slog.DebugContext(telemetry.WithRequestID(ctx, requestID), "api request",
		"method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// ListParams is the common search/pagination query shape.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprint(p.Limit))
	}
	return q
}

// ListMeta mirrors the server's pagination block.
type ListMeta struct {
	Total    int `json:"total"`
	From     int `json:"from"`
	To       int `json:"to"`
	LastPage int `json:"last_page"`
}
