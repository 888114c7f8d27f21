package browser

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/ibeckermayer/mockshot/internal/render"
	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

func TestOptions_Headless(t *testing.T) {
	base := len(Options(Config{}))

	if got := len(Options(Config{Headless: true})); got != base+1 {
		t.Errorf("headless should add disable-gpu: got %d options, base %d", got, base)
	}
	if got := len(Options(Config{NoSandbox: true, ExecPath: "/usr/bin/chromium"})); got != base+3 {
		t.Errorf("expected sandbox and exec path options: got %d, base %d", got, base)
	}
}

func TestLaunch_MissingExecutable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	l := NewLauncher(Config{
		Headless: true,
		ExecPath: filepath.Join(t.TempDir(), "no-such-chrome"),
	})

	b, err := l.Launch(ctx)
	if err == nil {
		b.Close()
		t.Fatal("expected launch to fail for a missing executable")
	}
}

// findChrome returns a Chrome binary to run against, or skips the test
func findChrome(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping chrome test in short mode")
	}
	if path := os.Getenv("MOCKSHOT_CHROME_PATH"); path != "" {
		return path
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("chrome not found; set MOCKSHOT_CHROME_PATH to run")
	return ""
}

func TestCapture_RealChrome(t *testing.T) {
	execPath := findChrome(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	doc, err := render.Document(serializer.SerializedPost{
		Platform: types.PlatformTwitter,
		Theme:    types.ThemeDark,
		Author: types.Author{
			Name:         "Jane Doe",
			Handle:       "janedoe",
			Verified:     true,
			VerifiedType: types.VerifiedBlue,
		},
		Content:   "Hello world",
		Timestamp: "2024-01-01T12:00:00.000Z",
		Metrics:   types.Metrics{Likes: 1500, Comments: 10, Reposts: 5},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	b, err := NewLauncher(Config{
		Headless:  true,
		ExecPath:  execPath,
		NoSandbox: os.Geteuid() == 0,
	}).Launch(ctx)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	defer b.Close()

	page, err := b.NewPage(ctx, PageOptions{Width: 800, Height: 1200, Scale: 2})
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	defer page.Close()

	if err := page.SetContent(ctx, doc); err != nil {
		t.Fatalf("set content: %v", err)
	}
	if err := page.WaitForAssets(ctx, 5*time.Second, 0); err != nil {
		t.Fatalf("wait for assets: %v", err)
	}

	missing, err := page.QuerySelector(ctx, "#nope")
	if err != nil || missing != nil {
		t.Fatalf("QuerySelector(#nope) = %v, %v; want nil, nil", missing, err)
	}

	el, err := page.QuerySelector(ctx, render.RootSelector)
	if err != nil || el == nil {
		t.Fatalf("QuerySelector(root) = %v, %v", el, err)
	}

	data, err := el.Screenshot(ctx)
	if err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	img, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if img.Width != 2*598 {
		t.Errorf("width = %d, want %d", img.Width, 2*598)
	}
	if img.Height == 0 {
		t.Error("empty capture")
	}

	if err := page.Close(); err != nil {
		t.Errorf("page close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("browser close: %v", err)
	}
}
