// Package api is the single choke point for every call to the remote
// financial service. It attaches the bearer token, serializes JSON, and
// normalizes failures into a uniform Error shape. It implements the consumer
// interfaces declared by each domain store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"centavo/internal/auth"
	"centavo/internal/budget"
	"centavo/internal/report"
	"centavo/internal/transaction"
)

// TokenProvider supplies the access token currently held in durable storage.
// An empty token means the request goes out unauthenticated.
type TokenProvider interface {
	Token() string
}

// Error is the uniform failure shape for any non-2xx response.
type Error struct {
	Status  int
	Message string
	Data    json.RawMessage
}

// Error returns the server-provided detail, suitable for inline display.
func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

// Compile-time checks that the client satisfies every store's interface.
var (
	_ auth.API        = (*Client)(nil)
	_ transaction.API = (*Client)(nil)
	_ budget.API      = (*Client)(nil)
	_ report.API      = (*Client)(nil)
)

func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// do performs one request. There are no retries and no backoff; a call either
// resolves or fails, and retry policy is the caller's concern.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, data)
	}

	return data, nil
}

// newError extracts the server's detail/message field. A body that is not
// JSON degrades to an empty data object rather than a secondary error.
func newError(status int, body []byte) *Error {
	apiErr := &Error{
		Status: status,
		Data:   json.RawMessage(`{}`),
	}

	var detail struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &detail); err == nil {
		apiErr.Data = json.RawMessage(body)
	}

	switch {
	case detail.Detail != "":
		apiErr.Message = detail.Detail
	case detail.Message != "":
		apiErr.Message = detail.Message
	default:
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

func decodeOne[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &out, nil
}
