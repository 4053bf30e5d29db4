package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
)

type refreshingTokens struct {
	token     string
	refreshed string
	calls     int
}

func (t *refreshingTokens) Token() (string, error) { return t.token, nil }

func (t *refreshingTokens) Refresh(ctx context.Context) (string, error) {
	t.calls++
	if t.refreshed == "" {
		return "", fmt.Errorf("no refresh token")
	}
	t.token = t.refreshed
	return t.refreshed, nil
}

func TestGet_AttachesBearerAndDecodes(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		fmt.Fprint(w, `{"id": 42}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("tok-1"), 0, zerolog.Nop())

	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.Get(context.Background(), "/api/thing/", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID header to be set")
	}
	if out.ID != 42 {
		t.Errorf("expected id 42, got %d", out.ID)
	}
}

func TestGet_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("t"), 0, zerolog.Nop())

	q := url.Values{}
	q.Set("client_id", "7")
	q.Set("invoiced", "false")

	var out []struct{}
	if err := c.Get(context.Background(), "/api/billing/time-entries/", q, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery.Get("client_id") != "7" || gotQuery.Get("invoiced") != "false" {
		t.Errorf("query not forwarded: %v", gotQuery)
	}
}

func TestPost_RefreshRetryOn401(t *testing.T) {
	var auths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer srv.Close()

	tokens := &refreshingTokens{token: "stale", refreshed: "fresh"}
	c := NewClient(srv.URL, tokens, 0, zerolog.Nop())

	if err := c.Post(context.Background(), "/api/thing/", map[string]string{"a": "b"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tokens.calls != 1 {
		t.Errorf("expected exactly one refresh, got %d", tokens.calls)
	}
	if len(auths) != 2 || auths[0] != "Bearer stale" || auths[1] != "Bearer fresh" {
		t.Errorf("unexpected auth sequence: %v", auths)
	}
}

func TestPost_UnauthorizedWithoutRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("stale"), 0, zerolog.Nop())

	err := c.Post(context.Background(), "/api/thing/", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("expected status 401 on error, got %v", err)
	}
}

func TestErrorDetail_FromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail": "invoice is not in draft status"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("t"), 0, zerolog.Nop())

	err := c.Post(context.Background(), "/api/billing/invoices/1/mark_as_sent/", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Detail != "invoice is not in draft status" {
		t.Errorf("unexpected detail: %q", apiErr.Detail)
	}
	if !IsRejected(err) {
		t.Error("400 should classify as rejected")
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	c := NewClient(srv.URL, StaticToken("t"), 0, zerolog.Nop())

	err := c.Get(context.Background(), "/api/clients/", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNetworkFailure(err) {
		t.Errorf("expected network failure classification, got %v", err)
	}
}
