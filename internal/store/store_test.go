package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ibeckermayer/mockshot/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "mockshot.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockshot.db")
	ctx := context.Background()

	s, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.SaveProfile(ctx, "Jane", types.Author{Name: "Jane Doe"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	profiles, err := s.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected profile to survive reopen, got %d", len(profiles))
	}
}

func TestSanitizeProfileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Jane  ", "Jane"},
		{`<b>"Jane" & 'Co'</b>`, "bJane  Co/b"},
		{strings.Repeat("a", 60), strings.Repeat("a", 50)},
		{"<>&", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := SanitizeProfileName(tt.in); got != tt.want {
			t.Errorf("SanitizeProfileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := types.Author{
		Name:         "Jane Doe",
		Handle:       "jane",
		Verified:     true,
		VerifiedType: types.VerifiedGold,
		Headline:     "Engineer",
	}
	p, err := s.SaveProfile(ctx, "  Work  ", author)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.ID == "" || p.Name != "Work" {
		t.Errorf("unexpected profile %+v", p)
	}

	profiles, err := s.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	got := profiles[0]
	if got.ID != p.ID || got.Name != "Work" || !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("listed %+v, saved %+v", got, p)
	}
	if got.Author != author {
		t.Errorf("author did not round trip: %+v", got.Author)
	}
}

func TestSaveProfile_Rules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveProfile(ctx, " <&> ", types.Author{}); !errors.Is(err, ErrProfileNameRequired) {
		t.Errorf("expected ErrProfileNameRequired, got %v", err)
	}

	if _, err := s.SaveProfile(ctx, "Jane", types.Author{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.SaveProfile(ctx, "JANE", types.Author{}); !errors.Is(err, ErrProfileExists) {
		t.Errorf("expected case-insensitive duplicate rejection, got %v", err)
	}

	for i := 1; i < MaxProfiles; i++ {
		if _, err := s.SaveProfile(ctx, "profile "+string(rune('a'+i)), types.Author{}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if _, err := s.SaveProfile(ctx, "one too many", types.Author{}); !errors.Is(err, ErrProfileLimit) {
		t.Errorf("expected ErrProfileLimit, got %v", err)
	}

	profiles, _ := s.ListProfiles(ctx)
	if len(profiles) != MaxProfiles {
		t.Errorf("expected %d profiles, got %d", MaxProfiles, len(profiles))
	}
}

func TestDeleteProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.SaveProfile(ctx, "Jane", types.Author{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteProfile(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteProfile(ctx, p.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}

	// The name is free again
	if _, err := s.SaveProfile(ctx, "jane", types.Author{}); err != nil {
		t.Errorf("expected name reuse after delete, got %v", err)
	}
}

func TestExports_RecordListPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	exports := []Export{
		{ID: "old", Platform: types.PlatformTwitter, Theme: types.ThemeLight, Scale: 2, Bytes: 100, Duration: time.Second, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "failed", Platform: types.PlatformTwitter, Theme: types.ThemeDark, Scale: 2, Duration: 30 * time.Second, Error: "deadline exceeded", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", Platform: types.PlatformInstagram, Theme: types.ThemeLight, Scale: 3, Bytes: 250, Duration: 1500 * time.Millisecond, CreatedAt: now},
	}
	for _, e := range exports {
		if err := s.RecordExport(ctx, e); err != nil {
			t.Fatalf("record %s: %v", e.ID, err)
		}
	}

	got, err := s.ListExports(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].ID != "new" || got[2].ID != "old" {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if got[1].Status != StatusError || got[1].Error != "deadline exceeded" {
		t.Errorf("failed export not recorded as error: %+v", got[1])
	}
	if got[0].Status != StatusOK || got[0].Duration != 1500*time.Millisecond || got[0].Scale != 3 {
		t.Errorf("unexpected export %+v", got[0])
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 platforms, got %+v", stats)
	}
	tw := stats[1]
	if tw.Platform != types.PlatformTwitter || tw.Succeeded != 1 || tw.Failed != 1 || tw.Bytes != 100 {
		t.Errorf("unexpected twitter stats %+v", tw)
	}

	n, err := s.PruneExports(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned row, got %d", n)
	}
	got, _ = s.ListExports(ctx, 10)
	if len(got) != 2 {
		t.Errorf("expected 2 exports after prune, got %d", len(got))
	}
}

func TestHTMLDumps(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	d := NewHTMLDumps(dir)

	if _, err := d.Latest(); err == nil {
		t.Errorf("expected error before any dump")
	}

	path, err := d.DumpHTML("twitter/abc", "<!DOCTYPE html>")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, "-twitter_abc.html") {
		t.Errorf("unexpected dump path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<!DOCTYPE html>" {
		t.Errorf("dump content = %q, %v", data, err)
	}

	latest, err := d.Latest()
	if err != nil || latest != path {
		t.Errorf("Latest() = %s, %v; want %s", latest, err, path)
	}
}
