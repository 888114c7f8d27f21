package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nfake")

func TestExport(t *testing.T) {
	var got serializer.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/screenshot" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(fakePNG)
	}))
	defer srv.Close()

	post := types.DefaultPost(types.PlatformLinkedIn, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	post.Content = "Hello world"

	c := New(srv.URL+"/", nil)
	data, err := c.Export(context.Background(), post, 0)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Equal(data, fakePNG) {
		t.Errorf("unexpected body %q", data)
	}

	if got.Mockup == nil || got.Mockup.Platform != types.PlatformLinkedIn || got.Mockup.Content != "Hello world" {
		t.Errorf("server received %+v", got.Mockup)
	}
	if got.Scale != DefaultScale {
		t.Errorf("scale = %d, want %d", got.Scale, DefaultScale)
	}
	if got.Mockup.Timestamp != "2024-01-01T12:00:00.000Z" {
		t.Errorf("timestamp = %q", got.Mockup.Timestamp)
	}
}

func TestExport_SurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(serializer.ErrorResponse{Error: "invalid request: mockup.platform is required"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Export(context.Background(), types.Post{}, 2)

	var exportErr *Error
	if !errors.As(err, &exportErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if exportErr.StatusCode != http.StatusBadRequest || exportErr.Message != "invalid request: mockup.platform is required" {
		t.Errorf("unexpected error %+v", exportErr)
	}
}

func TestExport_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Export(context.Background(), types.Post{}, 2)

	var exportErr *Error
	if !errors.As(err, &exportErr) || exportErr.Message != "bad gateway" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestExport_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := New(url, nil).Export(context.Background(), types.Post{}, 2); err == nil {
		t.Fatal("expected error")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	if err := New(srv.URL, nil).Health(context.Background()); err != nil {
		t.Errorf("health: %v", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		prefix string
		scale  int
		want   string
	}{
		{"twitter", 2, "twitter-2x.png"},
		{"launch-post", 3, "launch-post-3x.png"},
		{"linkedin", 0, "linkedin-2x.png"},
	}
	for _, tt := range tests {
		if got := Filename(tt.prefix, tt.scale); got != tt.want {
			t.Errorf("Filename(%q, %d) = %q, want %q", tt.prefix, tt.scale, got, tt.want)
		}
	}

	day := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	if d := DatedPrefix(types.PlatformTwitter, "janedoe", day); d != "twitter-janedoe-2024-03-09" {
		t.Errorf("DatedPrefix = %q", d)
	}
	if d := DatedPrefix(types.PlatformThreads, "", day); d != "threads-2024-03-09" {
		t.Errorf("DatedPrefix without handle = %q", d)
	}
}

func TestSaveExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := SaveExport(dir, "", types.PlatformThreads, 1, fakePNG)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "threads-1x.png" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(data, fakePNG) {
		t.Errorf("saved %q, %v", data, err)
	}
}
