// Package client exports posts through a running mockshot server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

// DefaultScale is used when an export asks for scale 0
const DefaultScale = 2

// Error is a failure reported by the server
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("export failed (%d): %s", e.StatusCode, e.Message)
}

// Client talks to the screenshot endpoint
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL. A nil hc uses a client with a 60s timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Export serializes post and returns the PNG the server captured
func (c *Client) Export(ctx context.Context, post types.Post, scale int) ([]byte, error) {
	return c.ExportSerialized(ctx, serializer.Serialize(post), scale)
}

// ExportSerialized sends an already serialized post
func (c *Client) ExportSerialized(ctx context.Context, sp serializer.SerializedPost, scale int) ([]byte, error) {
	if scale == 0 {
		scale = DefaultScale
	}

	body, err := json.Marshal(serializer.Request{Mockup: &sp, Scale: scale})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/screenshot", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call screenshot service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp.StatusCode, data)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}
	return data, nil
}

// Health checks that the server is up
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}

func errorFromResponse(status int, body []byte) error {
	var er serializer.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{StatusCode: status, Message: msg}
	}
	return &Error{StatusCode: status, Message: er.Error}
}

// Filename is "{prefix}-{scale}x.png"
func Filename(prefix string, scale int) string {
	if scale == 0 {
		scale = DefaultScale
	}
	return fmt.Sprintf("%s-%dx.png", prefix, scale)
}

// DatedPrefix is "{platform}-{handle}-{YYYY-MM-DD}", for use as a Filename prefix
func DatedPrefix(platform types.Platform, handle string, t time.Time) string {
	if handle == "" {
		return fmt.Sprintf("%s-%s", platform, t.UTC().Format("2006-01-02"))
	}
	return fmt.Sprintf("%s-%s-%s", platform, handle, t.UTC().Format("2006-01-02"))
}

// SaveExport writes png into dir. An empty prefix uses the post's platform.
// Returns the path to the saved file.
func SaveExport(dir, prefix string, platform types.Platform, scale int, png []byte) (string, error) {
	if prefix == "" {
		prefix = string(platform)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(dir, Filename(prefix, scale))
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
