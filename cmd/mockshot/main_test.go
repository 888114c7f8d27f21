package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "post.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadRequest(t *testing.T) {
	req, err := readRequest(writeFile(t, `{"mockup":{"platform":"threads","content":"hi"},"scale":3}`))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if req.Mockup == nil || req.Mockup.Platform != "threads" || req.Scale != 3 {
		t.Errorf("unexpected request %+v", req)
	}

	req, err = readRequest(writeFile(t, `{"platform":"facebook","content":"hi"}`))
	if err != nil {
		t.Fatalf("read bare post: %v", err)
	}
	if req.Mockup == nil || req.Mockup.Platform != "facebook" || req.Scale != 0 {
		t.Errorf("unexpected request %+v", req)
	}

	if _, err := readRequest(writeFile(t, `{"mockup":`)); err == nil {
		t.Error("expected parse error")
	}
}

func TestCountFlag(t *testing.T) {
	var n int
	f := countFlag{&n}
	if err := f.Set("1.5K"); err != nil || n != 1500 {
		t.Errorf("Set(1.5K) = %d, %v", n, err)
	}
	if f.String() != "1500" {
		t.Errorf("String() = %q", f.String())
	}
	for _, bad := range []string{"lots", "Inf", "NaN"} {
		if err := f.Set(bad); err == nil {
			t.Errorf("Set(%q) expected error", bad)
		}
	}
}

func TestExportName(t *testing.T) {
	sp := serializer.SerializedPost{
		Platform:  types.PlatformTwitter,
		Author:    types.Author{Handle: "janedoe"},
		Timestamp: "2024-01-01T12:00:00.000Z",
	}

	tests := []struct {
		name   string
		file   string
		prefix string
		dated  bool
		batch  bool
		want   string
	}{
		{"single", "posts/a.json", "", false, false, ""},
		{"single with prefix", "posts/a.json", "launch", false, false, "launch"},
		{"batch", "posts/a.json", "", false, true, "a"},
		{"dated", "posts/a.json", "", true, false, "twitter-janedoe-2024-01-01"},
		{"dated batch", "posts/a.json", "", true, true, "twitter-janedoe-2024-01-01-a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exportName(tt.file, tt.prefix, tt.dated, tt.batch, types.PlatformTwitter, sp)
			if err != nil {
				t.Fatalf("exportName: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	// Same handle and day in one batch must not share a name
	a, _ := exportName("a.json", "", true, true, types.PlatformTwitter, sp)
	b, _ := exportName("b.json", "", true, true, types.PlatformTwitter, sp)
	if a == b {
		t.Errorf("dated batch names collide: %q", a)
	}

	sp.Timestamp = "yesterday"
	if _, err := exportName("a.json", "", true, false, types.PlatformTwitter, sp); err == nil {
		t.Error("expected a bad timestamp to fail a dated name")
	}
}
