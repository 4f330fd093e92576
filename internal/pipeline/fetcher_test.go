package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/bluecite/internal/model"
)

func testLookupConfig() model.LookupConfig {
	cfg := model.DefaultConfig().Lookup
	cfg.Timeout = 5 * time.Second
	cfg.UserAgent = "test-agent"
	cfg.MaxBodyBytes = 1 << 20
	return cfg
}

func TestFetchWithRetry_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("Expected test-agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<html><body><p>See 42 U.S.C. § 1983.</p></body></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(testLookupConfig())
	doc, err := fetcher.FetchWithRetry(context.Background(), server.URL+"/articles/memo.html")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if doc.Text != "See 42 U.S.C. § 1983." {
		t.Errorf("Unexpected text: %q", doc.Text)
	}
	if doc.Name != "memo.html" {
		t.Errorf("Expected name from the last path segment, got %q", doc.Name)
	}
	if doc.ID == "" {
		t.Error("Expected a document ID")
	}
}

func TestFetchWithRetry_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, "line one\r\nline two")
	}))
	defer server.Close()

	doc, err := NewFetcher(testLookupConfig()).FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if doc.Text != "line one\nline two" {
		t.Errorf("Unexpected text: %q", doc.Text)
	}
	if !strings.HasPrefix(doc.Name, "127.0.0.1") {
		t.Errorf("Expected host as name, got %q", doc.Name)
	}
}

func TestFetchWithRetry_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()

	// Override sleep for fast tests
	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	doc, err := NewFetcher(testLookupConfig()).FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if doc.Text != "OK" {
		t.Errorf("Unexpected text: %q", doc.Text)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_PermanentFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	_, err := NewFetcher(testLookupConfig()).FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	// 404 is not retryable, so should fail immediately
	if got := err.Error(); got != "unexpected status: 404 Not Found" {
		t.Errorf("Unexpected error: %s", got)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_UnsupportedFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = fmt.Fprint(w, "%PDF-1.7")
	}))
	defer server.Close()

	_, err := NewFetcher(testLookupConfig()).FetchWithRetry(context.Background(), server.URL+"/brief.pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFetchWithRetry_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, strings.Repeat("a", 100))
	}))
	defer server.Close()

	cfg := testLookupConfig()
	cfg.MaxBodyBytes = 10
	doc, err := NewFetcher(cfg).FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(doc.Text) != 10 {
		t.Errorf("Expected body cut at 10 bytes, got %d", len(doc.Text))
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/brief": true,
		"http://example.com":        true,
		"notes/brief.txt":           false,
		"ftp://example.com/file":    false,
	}
	for input, want := range tests {
		if got := IsURL(input); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", input, got, want)
		}
	}
}
