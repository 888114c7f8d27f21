// Package render turns a serialized post into a self-contained HTML document
// styled like the target platform. Rendering is pure: the output depends only
// on the input post.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

// RootID is the id of the element the screenshot service captures.
// Every rendered document contains it exactly once.
const RootID = "mockup-container"

// RootSelector is the CSS selector for RootID
const RootSelector = "#" + RootID

// mockup is what a platform template hands back to the document wrapper
type mockup struct {
	Width      int
	FontFamily template.CSS
	Palette    palette
	Body       template.HTML
}

type templateFunc func(sp serializer.SerializedPost) (mockup, error)

var platformTemplates = map[types.Platform]templateFunc{
	types.PlatformTwitter:   renderTwitter,
	types.PlatformLinkedIn:  renderLinkedIn,
	types.PlatformFacebook:  renderFacebook,
	types.PlatformInstagram: renderInstagram,
	types.PlatformThreads:   renderThreads,
}

var templates = template.Must(template.New("document").Parse(documentTemplate))

func init() {
	template.Must(templates.New("twitter").Parse(twitterTemplate))
	template.Must(templates.New("linkedin").Parse(linkedInTemplate))
	template.Must(templates.New("facebook").Parse(facebookTemplate))
	template.Must(templates.New("instagram").Parse(instagramTemplate))
	template.Must(templates.New("threads").Parse(threadsTemplate))
}

// TemplateFor reports which platform template renders p.
// Unknown platforms fall back to Twitter.
func TemplateFor(p types.Platform) types.Platform {
	if _, ok := platformTemplates[p]; ok {
		return p
	}
	return types.PlatformTwitter
}

// Document renders sp as a complete HTML document with inlined CSS,
// a transparent page background and a single mockup root element.
func Document(sp serializer.SerializedPost) (string, error) {
	fn := platformTemplates[TemplateFor(sp.Platform)]

	m, err := fn(sp)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "document", m); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

// execute runs a named platform template into trusted HTML
func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// timestampOf parses the embedded timestamp. An unparsable value renders
// as the zero time; the service rejects those before rendering.
func timestampOf(sp serializer.SerializedPost) time.Time {
	ts, err := serializer.ParseTimestamp(sp.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return ts
}

type authorView struct {
	Name     string
	Handle   string
	Avatar   template.URL
	Verified bool
	Badge    template.HTML
	Headline string
	Degree   string
}

func newAuthorView(a types.Author, accent template.CSS, badgeSize int) authorView {
	v := authorView{
		Name:     a.Name,
		Handle:   a.Handle,
		Avatar:   avatarURL(a.Avatar, accent),
		Verified: a.Verified,
		Headline: a.Headline,
		Degree:   a.ConnectionDegree,
	}
	if a.Verified {
		v.Badge = verifiedBadge(a.VerifiedType, badgeSize)
	}
	return v
}

type imageView struct {
	URL template.URL
	Alt string
}

// imageViews keeps at most limit images
func imageViews(images []types.Image, limit int) []imageView {
	if len(images) > limit {
		images = images[:limit]
	}
	out := make([]imageView, 0, len(images))
	for _, img := range images {
		alt := img.Alt
		if alt == "" {
			alt = "Post image"
		}
		out = append(out, imageView{URL: imageURL(img.URL), Alt: alt})
	}
	return out
}

// ImageLayout names the Twitter image arrangement for a count of images
func ImageLayout(count int) string {
	switch {
	case count <= 0:
		return ""
	case count == 1:
		return "single"
	case count == 2:
		return "pair"
	case count == 3:
		return "triple"
	default:
		return "grid"
	}
}

// imageURL passes user URLs through unchanged apart from script schemes.
// Data and blob URLs from uploaded files are allowed.
func imageURL(raw string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "vbscript:") {
		return ""
	}
	return template.URL(raw)
}

// avatarURL falls back to a colored placeholder circle when no avatar is set
func avatarURL(raw string, accent template.CSS) template.URL {
	if strings.TrimSpace(raw) != "" {
		return imageURL(raw)
	}
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><circle cx="50" cy="50" r="50" fill="%s"/><text x="50" y="65" text-anchor="middle" fill="white" font-size="40" font-family="sans-serif">?</text></svg>`, accent)
	return template.URL("data:image/svg+xml," + url.PathEscape(svg))
}

const verifiedPath = "M20.396 11c-.018-.646-.215-1.275-.57-1.816-.354-.54-.852-.972-1.438-1.246.223-.607.27-1.264.14-1.897-.131-.634-.437-1.218-.882-1.687-.47-.445-1.053-.75-1.687-.882-.633-.13-1.29-.083-1.897.14-.273-.587-.704-1.086-1.245-1.44S11.647 1.62 11 1.604c-.646.017-1.273.213-1.813.568s-.969.854-1.24 1.44c-.608-.223-1.267-.272-1.902-.14-.635.13-1.22.436-1.69.882-.445.47-.749 1.055-.878 1.688-.13.633-.08 1.29.144 1.896-.587.274-1.087.705-1.443 1.245-.356.54-.555 1.17-.574 1.817.02.647.218 1.276.574 1.817.356.54.856.972 1.443 1.245-.224.606-.274 1.263-.144 1.896.13.634.433 1.218.877 1.688.47.443 1.054.747 1.687.878.633.132 1.29.084 1.897-.136.274.586.705 1.084 1.246 1.439.54.354 1.17.551 1.816.569.647-.016 1.276-.213 1.817-.567s.972-.854 1.245-1.44c.604.239 1.266.296 1.903.164.636-.132 1.22-.447 1.68-.907.46-.46.776-1.044.908-1.681s.075-1.299-.165-1.903c.586-.274 1.084-.705 1.439-1.246.354-.54.551-1.17.569-1.816zM9.662 14.85l-3.429-3.428 1.293-1.302 2.072 2.072 4.4-4.794 1.347 1.246z"

func verifiedBadge(t types.VerifiedType, size int) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<svg class="verified-badge" data-verified="%s" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 22 22" style="width:%dpx;height:%dpx;margin-left:4px;display:inline-block;vertical-align:middle;flex-shrink:0;"><path fill="%s" d="%s"/></svg>`,
		verifiedTypeOrDefault(t), size, size, badgeColor(t), verifiedPath,
	))
}

func verifiedTypeOrDefault(t types.VerifiedType) types.VerifiedType {
	if _, ok := badgeColors[t]; ok {
		return t
	}
	return types.VerifiedBlue
}

// icon renders a 24x24 path icon inline
func icon(path string, color template.CSS, size int) template.HTML {
	return iconBox(path, color, size, 24)
}

// iconBox renders a path drawn on a box x box viewBox
func iconBox(path string, color template.CSS, size, box int) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" style="width:%dpx;height:%dpx;display:block;"><path fill="%s" d="%s"/></svg>`,
		box, box, size, size, color, path,
	))
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
html, body { background: transparent; }
body { -webkit-font-smoothing: antialiased; -moz-osx-font-smoothing: grayscale; }
img { display: block; max-width: 100%; }
.image-cell { object-fit: cover; display: block; }
</style>
</head>
<body style="margin:0;padding:0;background:transparent;">
<div id="mockup-container" style="display:block;width:{{.Width}}px;font-family:{{.FontFamily}};background-color:{{.Palette.Background}};color:{{.Palette.Text}};">
{{.Body}}
</div>
</body>
</html>
`
