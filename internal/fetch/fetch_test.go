package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go-steam-export/internal/fetch"
)

func newClient(t *testing.T) *fetch.Client {
	t.Helper()
	cl, err := fetch.New(fetch.Options{
		Timeout:       2 * time.Second,
		RateLimitWait: 10 * time.Millisecond,
		RetryWait:     5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return cl
}

func TestGetJSON_RateLimitThenOK(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":42}`))
	}))
	defer srv.Close()

	var out struct {
		Value int `json:"value"`
	}
	if err := newClient(t).GetJSON(context.Background(), srv.URL, nil, &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if out.Value != 42 {
		t.Fatalf("value = %d, want 42", out.Value)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestGetJSON_RetryOnStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var out map[string]any
	if err := newClient(t).GetJSON(context.Background(), srv.URL, nil, &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestGetJSON_MaxRetriesExceeded(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out map[string]any
	err := newClient(t).GetJSON(context.Background(), srv.URL, nil, &out)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var re *fetch.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *fetch.RequestError", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestGetJSON_QueryParams(t *testing.T) {
	var gotKey, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotID = r.URL.Query().Get("steamid")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var out map[string]any
	q := map[string]string{"key": "k", "steamid": "76561198000000000"}
	if err := newClient(t).GetJSON(context.Background(), srv.URL, q, &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if gotKey != "k" || gotID != "76561198000000000" {
		t.Fatalf("query = (%q, %q)", gotKey, gotID)
	}
}

func TestGetPage_UserAgentNoRetry(t *testing.T) {
	t.Setenv("SP_UA", "test-agent/1.0")
	var calls int32
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := newClient(t).GetPage(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error, got nil")
	}
	if gotUA != "test-agent/1.0" {
		t.Fatalf("user-agent = %q, want %q", gotUA, "test-agent/1.0")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls = %d, want 1 (page fetch must not retry)", n)
	}
}

func TestGetJSON_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out map[string]any
	err := newClient(t).GetJSON(ctx, srv.URL, nil, &out)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
