package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"423":   423,
		"1,234": 1234,
		"1.2K":  1200,
		"1.5k":  1500,
		"5.7M":  5700000,
		"8.2M":  8200000,
		"0.3K":  300,
		" 10 ":  10,
	}
	for in, want := range cases {
		got, err := ParseCount(in)
		if err != nil {
			t.Fatalf("ParseCount(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseCount_Rejects(t *testing.T) {
	for _, in := range []string{"abc", "-5", "K", "Inf", "-Inf", "NaN", "infK", "1e300M"} {
		if _, err := ParseCount(in); err == nil {
			t.Fatalf("ParseCount(%q) expected error", in)
		}
	}
}

func TestDefaultPost_PlatformFields(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tw := DefaultPost(PlatformTwitter, now)
	if tw.Client != "Twitter for iPhone" || tw.Privacy != "" {
		t.Fatalf("unexpected twitter defaults: %+v", tw)
	}

	fb := DefaultPost(PlatformFacebook, now)
	if fb.Privacy != PrivacyPublic || fb.Client != "" {
		t.Fatalf("unexpected facebook defaults: %+v", fb)
	}

	li := DefaultPost(PlatformLinkedIn, now)
	if li.Author.ConnectionDegree != "1st" || li.Metrics.Reactions == nil {
		t.Fatalf("unexpected linkedin defaults: %+v", li)
	}
	if li.Metrics.Reactions.Total() != 142 {
		t.Fatalf("reaction total = %d, want 142", li.Metrics.Reactions.Total())
	}

	// Defaults must not share the reactions pointer between posts.
	other := DefaultPost(PlatformLinkedIn, now)
	other.Metrics.Reactions.Like = 0
	if li.Metrics.Reactions.Like != 89 {
		t.Fatalf("default reactions are shared between posts")
	}
}

func TestPlatformValid(t *testing.T) {
	for _, p := range Platforms {
		if !p.Valid() {
			t.Fatalf("%s should be valid", p)
		}
	}
	if Platform("myspace").Valid() {
		t.Fatalf("myspace should not be valid")
	}
}

func TestReactionsTotal_IgnoresNegative(t *testing.T) {
	r := Reactions{Like: 5, Love: -3, Funny: 2}
	if got := r.Total(); got != 7 {
		t.Fatalf("Total() = %d, want 7", got)
	}
}

func TestAuthor_AvatarURLAlias(t *testing.T) {
	var a Author
	if err := json.Unmarshal([]byte(`{"name":"Jane Doe","avatarUrl":"https://x.test/a.png","verified":true}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Name != "Jane Doe" || a.Avatar != "https://x.test/a.png" || !a.Verified {
		t.Errorf("unexpected author %+v", a)
	}

	if err := json.Unmarshal([]byte(`{"avatar":"one.png","avatarUrl":"two.png"}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Avatar != "one.png" {
		t.Errorf("avatar should win over avatarUrl, got %q", a.Avatar)
	}
}
