package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

func samplePost(platform types.Platform) serializer.SerializedPost {
	p := types.DefaultPost(platform, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC))
	p.Author = types.Author{Name: "Jane Doe", Handle: "jane"}
	p.Content = "Hello world"
	return serializer.Serialize(p)
}

func withImages(sp serializer.SerializedPost, n int) serializer.SerializedPost {
	sp.Images = nil
	for i := 0; i < n; i++ {
		sp.Images = append(sp.Images, types.Image{URL: fmt.Sprintf("https://example.com/%d.png", i)})
	}
	return sp
}

func mustDocument(t *testing.T, sp serializer.SerializedPost) string {
	t.Helper()
	doc, err := Document(sp)
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	return doc
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{5420, "5.4K"},
		{999999, "1000K"},
		{1000000, "1M"},
		{2500000, "2.5M"},
		{-5, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatCount(tt.in); got != tt.want {
				t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCountLower(t *testing.T) {
	if got := FormatCountLower(1500); got != "1.5k" {
		t.Errorf("got %q, want 1.5k", got)
	}
	if got := FormatCountLower(3000000); got != "3m" {
		t.Errorf("got %q, want 3m", got)
	}
}

func TestImageLayout(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, ""},
		{1, "single"},
		{2, "pair"},
		{3, "triple"},
		{4, "grid"},
	}
	for _, tt := range tests {
		if got := ImageLayout(tt.count); got != tt.want {
			t.Errorf("ImageLayout(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestDocument_TwitterImageLayouts(t *testing.T) {
	tests := []struct {
		images int
		layout string
	}{
		{0, ""},
		{1, "single"},
		{2, "pair"},
		{3, "triple"},
		{4, "grid"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d images", tt.images), func(t *testing.T) {
			doc := mustDocument(t, withImages(samplePost(types.PlatformTwitter), tt.images))

			if got := strings.Count(doc, `class="image-cell"`); got != tt.images {
				t.Errorf("expected %d image cells, got %d", tt.images, got)
			}
			if tt.layout == "" {
				if strings.Contains(doc, "data-layout=") {
					t.Errorf("expected no image block")
				}
				return
			}
			if !strings.Contains(doc, `data-layout="`+tt.layout+`"`) {
				t.Errorf("expected layout %q", tt.layout)
			}
		})
	}
}

func TestDocument_PairCellsAreEqualWidth(t *testing.T) {
	doc := mustDocument(t, withImages(samplePost(types.PlatformTwitter), 2))

	cell := `style="flex:1 1 0;min-width:0;height:286px;"`
	if got := strings.Count(doc, cell); got != 2 {
		t.Errorf("expected two equal cells, got %d", got)
	}
}

func TestDocument_GridIsTwoByTwo(t *testing.T) {
	doc := mustDocument(t, withImages(samplePost(types.PlatformTwitter), 4))

	if !strings.Contains(doc, "grid-template-columns:1fr 1fr") {
		t.Errorf("expected a two column grid")
	}
}

func TestDocument_ExtraImagesTruncated(t *testing.T) {
	doc := mustDocument(t, withImages(samplePost(types.PlatformTwitter), 6))

	if got := strings.Count(doc, `class="image-cell"`); got != types.MaxImages {
		t.Errorf("expected %d image cells, got %d", types.MaxImages, got)
	}
}

func TestDocument_SingleImagePlatformsShowFirstImage(t *testing.T) {
	for _, p := range []types.Platform{types.PlatformLinkedIn, types.PlatformFacebook, types.PlatformInstagram, types.PlatformThreads} {
		t.Run(string(p), func(t *testing.T) {
			doc := mustDocument(t, withImages(samplePost(p), 3))

			if got := strings.Count(doc, `class="image-cell"`); got != 1 {
				t.Errorf("expected one image cell, got %d", got)
			}
			if !strings.Contains(doc, "https://example.com/0.png") {
				t.Errorf("expected first image to be shown")
			}
		})
	}
}

func TestDocument_InstagramPlaceholderWithoutImage(t *testing.T) {
	doc := mustDocument(t, samplePost(types.PlatformInstagram))

	if !strings.Contains(doc, "No image") {
		t.Errorf("expected placeholder")
	}
}

func TestDocument_EscapesContent(t *testing.T) {
	sp := samplePost(types.PlatformTwitter)
	sp.Content = `<script>alert(1)</script>`
	sp.Author.Name = `<img src=x onerror=alert(1)>`

	doc := mustDocument(t, sp)

	if strings.Contains(doc, "<script>") {
		t.Errorf("script tag was not escaped")
	}
	if !strings.Contains(doc, "&lt;script&gt;") {
		t.Errorf("expected escaped script text")
	}
	if strings.Contains(doc, "<img src=x") {
		t.Errorf("author name was not escaped")
	}
}

func TestDocument_ExactlyOneRoot(t *testing.T) {
	marker := `id="` + RootID + `"`

	for _, p := range types.Platforms {
		for _, theme := range types.Themes {
			t.Run(string(p)+"/"+string(theme), func(t *testing.T) {
				sp := samplePost(p)
				sp.Theme = theme
				doc := mustDocument(t, sp)

				if got := strings.Count(doc, marker); got != 1 {
					t.Errorf("expected exactly one root, got %d", got)
				}
			})
		}
	}
}

func TestDocument_InjectedRootIsEscaped(t *testing.T) {
	sp := samplePost(types.PlatformLinkedIn)
	sp.Content = `<div id="mockup-container">fake</div>`
	sp.Author.Headline = `"><div id="mockup-container">`

	doc := mustDocument(t, sp)

	if got := strings.Count(doc, `id="mockup-container"`); got != 1 {
		t.Errorf("expected exactly one root, got %d", got)
	}
}

func TestDocument_UnknownPlatformFallsBackToTwitter(t *testing.T) {
	if got := TemplateFor("myspace"); got != types.PlatformTwitter {
		t.Fatalf("TemplateFor = %q, want twitter", got)
	}

	sp := samplePost(types.PlatformTwitter)
	sp.Platform = "myspace"

	doc := mustDocument(t, sp)
	if !strings.Contains(doc, "width:598px") {
		t.Errorf("expected twitter layout")
	}
	if !strings.Contains(doc, "Twitter for iPhone") {
		t.Errorf("expected twitter client footer")
	}
}

func TestDocument_PlatformWidths(t *testing.T) {
	widths := map[types.Platform]int{
		types.PlatformTwitter:   598,
		types.PlatformLinkedIn:  552,
		types.PlatformFacebook:  500,
		types.PlatformInstagram: 468,
		types.PlatformThreads:   598,
	}
	for p, w := range widths {
		doc := mustDocument(t, samplePost(p))
		if !strings.Contains(doc, fmt.Sprintf("width:%dpx", w)) {
			t.Errorf("%s: expected width %d", p, w)
		}
	}
}

func TestDocument_VerifiedBadge(t *testing.T) {
	sp := samplePost(types.PlatformTwitter)
	doc := mustDocument(t, sp)
	if strings.Contains(doc, "verified-badge") {
		t.Fatalf("unverified author should have no badge")
	}

	tests := []struct {
		verifiedType types.VerifiedType
		want         string
	}{
		{types.VerifiedBlue, "#1d9bf0"},
		{types.VerifiedGold, "#e6a500"},
		{types.VerifiedGray, "#829aab"},
		{"", "#1d9bf0"},
	}
	for _, tt := range tests {
		sp.Author.Verified = true
		sp.Author.VerifiedType = tt.verifiedType

		doc := mustDocument(t, sp)
		if !strings.Contains(doc, "verified-badge") {
			t.Errorf("%q: expected badge", tt.verifiedType)
		}
		if !strings.Contains(doc, `fill="`+tt.want+`"`) {
			t.Errorf("%q: expected badge color %s", tt.verifiedType, tt.want)
		}
	}
}

func TestDocument_TransparentBackground(t *testing.T) {
	doc := mustDocument(t, samplePost(types.PlatformFacebook))

	if !strings.Contains(doc, "background:transparent") {
		t.Errorf("expected transparent page background")
	}
	if !strings.Contains(doc, "background-color:#ffffff") {
		t.Errorf("expected light card background on the root")
	}
}

func TestDocument_DimTheme(t *testing.T) {
	sp := samplePost(types.PlatformTwitter)
	sp.Theme = types.ThemeDim
	if doc := mustDocument(t, sp); !strings.Contains(doc, "#15202b") {
		t.Errorf("expected dim background on twitter")
	}

	sp = samplePost(types.PlatformFacebook)
	sp.Theme = types.ThemeDim
	if doc := mustDocument(t, sp); !strings.Contains(doc, "#242526") {
		t.Errorf("expected dim to render as dark on facebook")
	}
}

func TestDocument_ZeroMetricsOmitted(t *testing.T) {
	sp := samplePost(types.PlatformThreads)
	sp.Metrics = types.Metrics{Likes: 12}

	doc := mustDocument(t, sp)
	if strings.Contains(doc, "replies") {
		t.Errorf("zero replies should be omitted")
	}
	if !strings.Contains(doc, "12 likes") {
		t.Errorf("expected likes count")
	}

	sp = samplePost(types.PlatformTwitter)
	sp.Metrics = types.Metrics{}
	doc = mustDocument(t, sp)
	if strings.Contains(doc, "post-stats") || strings.Contains(doc, " Views") {
		t.Errorf("zero twitter metrics should be omitted")
	}
}

func TestDocument_Dates(t *testing.T) {
	tests := []struct {
		platform types.Platform
		want     string
	}{
		{types.PlatformTwitter, "2:30 PM · Jan 15, 2024"},
		{types.PlatformLinkedIn, "Jan 15"},
		{types.PlatformFacebook, "January 15 at 2:30 PM"},
		{types.PlatformInstagram, "JANUARY 15, 2024"},
		{types.PlatformThreads, "01/15/24"},
	}
	for _, tt := range tests {
		doc := mustDocument(t, samplePost(tt.platform))
		if !strings.Contains(doc, tt.want) {
			t.Errorf("%s: expected date %q", tt.platform, tt.want)
		}
	}
}

func TestDocument_LinkedInDetails(t *testing.T) {
	sp := samplePost(types.PlatformLinkedIn)
	sp.Author.ConnectionDegree = ""
	sp.Author.Headline = ""

	doc := mustDocument(t, sp)
	if !strings.Contains(doc, "• 1st") {
		t.Errorf("expected default connection degree")
	}
	if strings.Contains(doc, "author-headline") {
		t.Errorf("empty headline should be omitted")
	}
	// 89+23+12+8+7+3
	if !strings.Contains(doc, `<span class="reaction-total">142</span>`) {
		t.Errorf("expected reaction total of 142")
	}
}

func TestTopReactions(t *testing.T) {
	got := topReactions(&types.Reactions{Like: 1, Love: 5, Funny: 5, Celebrate: 3}, 3)
	want := []string{"love", "funny", "celebrate"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := topReactions(nil, 3); len(got) != 1 || got[0] != "like" {
		t.Errorf("expected like without a breakdown, got %v", got)
	}
	if got := topReactions(&types.Reactions{}, 3); len(got) != 0 {
		t.Errorf("expected nothing for zero reactions, got %v", got)
	}
}

func TestDocument_FacebookPrivacy(t *testing.T) {
	sp := samplePost(types.PlatformFacebook)
	sp.Privacy = types.PrivacyOnlyMe
	if doc := mustDocument(t, sp); !strings.Contains(doc, `data-privacy="only_me"`) {
		t.Errorf("expected only_me privacy")
	}

	sp.Privacy = ""
	if doc := mustDocument(t, sp); !strings.Contains(doc, `data-privacy="public"`) {
		t.Errorf("expected default public privacy")
	}
}

func TestDocument_ScriptURLsDropped(t *testing.T) {
	sp := samplePost(types.PlatformTwitter)
	sp.Images = []types.Image{{URL: "javascript:alert(1)"}}

	doc := mustDocument(t, sp)
	if strings.Contains(doc, "javascript:") {
		t.Errorf("script URL leaked into document")
	}
}

func TestDocument_DataURLImagesAllowed(t *testing.T) {
	sp := samplePost(types.PlatformTwitter)
	sp.Images = []types.Image{{URL: "data:image/png;base64,iVBORw0KGgo="}}

	doc := mustDocument(t, sp)
	if !strings.Contains(doc, "data:image/png;base64,iVBORw0KGgo=") {
		t.Errorf("expected data URL to pass through")
	}
}

func TestDocument_Deterministic(t *testing.T) {
	sp := withImages(samplePost(types.PlatformTwitter), 3)
	if mustDocument(t, sp) != mustDocument(t, sp) {
		t.Errorf("rendering the same post twice differed")
	}
}
