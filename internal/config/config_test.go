package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Screenshot.DefaultScale != 2 {
		t.Errorf("expected default scale 2, got %d", cfg.Screenshot.DefaultScale)
	}
	if cfg.Screenshot.MaxDuration().Seconds() != 30 {
		t.Errorf("expected 30s ceiling, got %v", cfg.Screenshot.MaxDuration())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Server.Addr = ":9999"
	cfg.Browser.ExecPath = "/opt/chrome"
	cfg.Store.RetentionDays = 7

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, cfg)
	}
}

func TestLoadFile_MissingKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":8080\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Screenshot.MaxConcurrent != Default().Screenshot.MaxConcurrent {
		t.Errorf("expected default max_concurrent, got %d", cfg.Screenshot.MaxConcurrent)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MOCKSHOT_ADDR", ":4000")
	t.Setenv("MOCKSHOT_CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("ZIPKIN_ADDRESS", "zipkin:9411")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Server.Addr != ":4000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Browser.ExecPath != "/usr/bin/chromium" {
		t.Errorf("exec path = %q", cfg.Browser.ExecPath)
	}
	if cfg.Tracing.ZipkinAddress != "zipkin:9411" {
		t.Errorf("zipkin = %q", cfg.Tracing.ZipkinAddress)
	}
}

func TestValidate_RejectsBadScale(t *testing.T) {
	cfg := Default()
	cfg.Screenshot.DefaultScale = 4
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for scale 4")
	}
}

func TestDBPath_Override(t *testing.T) {
	cfg := Default()
	cfg.Store.DBPath = "/tmp/x.db"
	if got, _ := cfg.DBPath(); got != "/tmp/x.db" {
		t.Errorf("got %q", got)
	}
}
