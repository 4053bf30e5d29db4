package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Transport is the request capability handed to repositories and services.
// Implementations attach credentials; callers never deal with tokens.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// TokenSource supplies the bearer token for each request. Refresh is
// invoked once when a request comes back 401; returning an error means
// the 401 stands.
type TokenSource interface {
	Token() (string, error)
	Refresh(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource with a fixed token and no refresh flow.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

func (t StaticToken) Refresh(ctx context.Context) (string, error) {
	return "", fmt.Errorf("no token refresh available")
}

// Client is an HTTP Transport against the practice management API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

// NewClient creates a transport for the given base URL. A zero timeout
// means requests are bounded only by the caller's context.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	token, err := c.tokens.Token()
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}

	resp, err := c.send(ctx, method, path, query, payload, token)
	if err != nil {
		return err
	}

	// One refresh-and-retry on 401; the retried request carries the new token.
	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		refreshed, refreshErr := c.tokens.Refresh(ctx)
		if refreshErr != nil {
			c.log.Debug().Str("path", path).Msg("token refresh unavailable")
			return &Error{Status: http.StatusUnauthorized, Method: method, Path: path, Err: ErrUnauthorized}
		}

		resp, err = c.send(ctx, method, path, query, payload, refreshed)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return &Error{Status: http.StatusUnauthorized, Method: method, Path: path, Err: ErrUnauthorized}
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail := readErrorDetail(resp.Body)
		c.log.Warn().Str("path", path).Int("status", resp.StatusCode).Str("detail", detail).Msg("request rejected")
		return &Error{Status: resp.StatusCode, Method: method, Path: path, Detail: detail}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &Error{Method: method, Path: path, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Str("method", method).Str("path", path).Str("request_id", requestID).Err(err).Msg("request failed")
		return nil, &Error{Method: method, Path: path, Err: err}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	return resp, nil
}

// readErrorDetail pulls a human-readable message out of an error response
// body. The backend answers either {"detail": "..."} or a field-error map.
func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for field, msg := range fields {
			parts = append(parts, fmt.Sprintf("%s: %v", field, msg))
		}
		return strings.Join(parts, "; ")
	}

	return strings.TrimSpace(string(data))
}
