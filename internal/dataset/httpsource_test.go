package dataset

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPSource_Version(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name: "etag preferred",
			headers: map[string]string{
				"ETag":          `"abc123"`,
				"Last-Modified": "Wed, 01 Jan 2025 00:00:00 GMT",
			},
			want: `"abc123"`,
		},
		{
			name: "last-modified fallback",
			headers: map[string]string{
				"Last-Modified": "Wed, 01 Jan 2025 00:00:00 GMT",
			},
			want: "Wed, 01 Jan 2025 00:00:00 GMT",
		},
		{
			name:    "no validator headers",
			headers: map[string]string{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodHead {
					t.Errorf("expected HEAD request, got %s", r.Method)
				}
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
			}))
			defer srv.Close()

			src := NewHTTPSource(DefaultHTTPConfig(srv.URL))
			got, err := src.Version()
			if err != nil {
				t.Fatalf("Version returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected version %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPSource_VersionStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSource(DefaultHTTPConfig(srv.URL))
	_, err := src.Version()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "http status 404") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHTTPSource_Open(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(phasesCSV))
	}))
	defer srv.Close()

	src := NewHTTPSource(DefaultHTTPConfig(srv.URL))
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != phasesCSV {
		t.Errorf("unexpected body: %q", string(body))
	}
}

func TestHTTPSource_OpenRetries(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(phasesCSV))
	}))
	defer srv.Close()

	config := DefaultHTTPConfig(srv.URL)
	config.RetryDelay = time.Millisecond
	src := NewHTTPSource(config)

	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	rc.Close()

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestHTTPSource_OpenExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	config := DefaultHTTPConfig(srv.URL)
	config.RetryCount = 1
	config.RetryDelay = time.Millisecond
	src := NewHTTPSource(config)

	_, err := src.Open(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "fetch failed after 2 attempts") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "http status 503") {
		t.Errorf("expected status in error chain, got: %v", err)
	}
}
