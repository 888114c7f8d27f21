package render

import (
	"html/template"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

var facebookIconPaths = map[string]string{
	"like":    "M1 21h4V9H1v12zm22-11c0-1.1-.9-2-2-2h-6.31l.95-4.57.03-.32c0-.41-.17-.79-.44-1.06L14.17 1 7.59 7.59C7.22 7.95 7 8.45 7 9v10c0 1.1.9 2 2 2h9c.83 0 1.54-.5 1.84-1.22l3.02-7.05c.09-.23.14-.47.14-.73v-2z",
	"comment": "M21.99 4c0-1.1-.89-2-1.99-2H4c-1.1 0-2 .9-2 2v12c0 1.1.9 2 2 2h14l4 4-.01-18zM18 14H6v-2h12v2zm0-3H6V9h12v2zm0-3H6V6h12v2z",
	"share":   "M18 16.08c-.76 0-1.44.3-1.96.77L8.91 12.7c.05-.23.09-.46.09-.7s-.04-.47-.09-.7l7.05-4.11c.54.5 1.25.81 2.04.81 1.66 0 3-1.34 3-3s-1.34-3-3-3-3 1.34-3 3c0 .24.04.47.09.7L8.04 9.81C7.5 9.31 6.79 9 6 9c-1.66 0-3 1.34-3 3s1.34 3 3 3c.79 0 1.5-.31 2.04-.81l7.12 4.16c-.05.21-.08.43-.08.65 0 1.61 1.31 2.92 2.92 2.92 1.61 0 2.92-1.31 2.92-2.92s-1.31-2.92-2.92-2.92z",
	"more":    "M6 10c-1.1 0-2 .9-2 2s.9 2 2 2 2-.9 2-2-.9-2-2-2zm12 0c-1.1 0-2 .9-2 2s.9 2 2 2 2-.9 2-2-.9-2-2-2zm-6 0c-1.1 0-2 .9-2 2s.9 2 2 2 2-.9 2-2-.9-2-2-2z",
}

// privacy icons are drawn on a 16x16 box
var privacyIconPaths = map[types.Privacy]string{
	types.PrivacyPublic:  "M8 0a8 8 0 108 8 8 8 0 00-8-8zm0 1.5a6.5 6.5 0 016.3 5h-2.8a11 11 0 00-1.6-4.6A6.5 6.5 0 018 1.5zM6.1 1.9A11 11 0 004.5 6.5H1.7a6.5 6.5 0 014.4-4.6zM1.7 9.5h2.8a11 11 0 001.6 4.6 6.5 6.5 0 01-4.4-4.6zm8.2 4.6a11 11 0 001.6-4.6h2.8a6.5 6.5 0 01-4.4 4.6zM8 14a9.5 9.5 0 01-2-4.5h4A9.5 9.5 0 018 14zM6 6.5A9.5 9.5 0 018 2a9.5 9.5 0 012 4.5z",
	types.PrivacyFriends: "M8 6.5a3.5 3.5 0 100-7 3.5 3.5 0 000 7zM3 14.5a1.5 1.5 0 01-1.5-1.5c0-2.49 2.69-4.5 6.5-4.5s6.5 2.01 6.5 4.5a1.5 1.5 0 01-1.5 1.5H3z",
	types.PrivacyOnlyMe:  "M8 0a4 4 0 00-4 4v2H3a1 1 0 00-1 1v8a1 1 0 001 1h10a1 1 0 001-1V7a1 1 0 00-1-1h-1V4a4 4 0 00-4-4zm2 6H6V4a2 2 0 114 0v2z",
}

const facebookLikeBadge template.HTML = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16" style="width:18px;height:18px;display:block;"><circle cx="8" cy="8" r="8" fill="#1877f2"/><path fill="#ffffff" d="M12.162 7.338c.176.123.338.245.338.674 0 .43-.229.604-.474.725.1.163.132.36.089.546-.077.344-.392.611-.672.69.121.194.159.385.015.62-.185.295-.346.407-1.058.407H7.5c-.988 0-1.5-.546-1.5-1V7.665c0-1.23 1.467-2.275 1.467-3.13L7.361 3.47c-.005-.065.008-.224.058-.27.08-.079.301-.2.635-.2.218 0 .363.041.534.123.581.277.732.978.732 1.542 0 .271-.414 1.083-.47 1.364 0 0 .867-.192 1.879-.199 1.061-.006 1.749.19 1.749.842 0 .261-.219.523-.316.666z"/></svg>`

const facebookLoveBadge template.HTML = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16" style="width:18px;height:18px;display:block;"><circle cx="8" cy="8" r="8" fill="#f33e58"/><path fill="#ffffff" d="M10.473 4c-1.07 0-1.632.67-2.473 1.652C7.16 4.67 6.597 4 5.527 4 4.342 4 3.473 4.88 3.473 5.982c0 2.423 3.88 5.494 4.527 6.018.647-.524 4.527-3.595 4.527-6.018C12.527 4.88 11.658 4 10.473 4"/></svg>`

type facebookView struct {
	Palette  palette
	Author   authorView
	Date     string
	Privacy  types.Privacy
	Audience template.HTML
	More     template.HTML
	Content  string
	Image    *imageView
	Badges   []template.HTML
	Total    string
	Comments string
	Shares   string
	Actions  []action
}

func renderFacebook(sp serializer.SerializedPost) (mockup, error) {
	pal := paletteFor(facebookPalettes, sp.Theme)

	privacy := sp.Privacy
	if _, ok := privacyIconPaths[privacy]; !ok {
		privacy = types.PrivacyPublic
	}

	v := facebookView{
		Palette:  pal,
		Author:   newAuthorView(sp.Author, pal.Accent, 15),
		Date:     facebookDate(timestampOf(sp)),
		Privacy:  privacy,
		Audience: iconBox(privacyIconPaths[privacy], pal.Secondary, 12, 16),
		More:     icon(facebookIconPaths["more"], pal.Secondary, 20),
		Content:  sp.Content,
		Image:    firstImage(sp.Images),
	}

	if total := facebookReactionTotal(sp.Metrics); total > 0 {
		v.Total = FormatCount(total)
		v.Badges = []template.HTML{facebookLikeBadge}
		if r := sp.Metrics.Reactions; r != nil && r.Love > 0 {
			v.Badges = append(v.Badges, facebookLoveBadge)
		}
	}
	if n := positive(sp.Metrics.Comments); n > 0 {
		v.Comments = FormatCount(n)
	}
	if n := positive(sp.Metrics.Reposts); n > 0 {
		v.Shares = FormatCount(n)
	}

	for _, a := range []struct{ icon, label string }{
		{"like", "Like"},
		{"comment", "Comment"},
		{"share", "Share"},
	} {
		v.Actions = append(v.Actions, action{
			Icon:  icon(facebookIconPaths[a.icon], pal.Secondary, 20),
			Label: a.label,
		})
	}

	body, err := execute("facebook", v)
	if err != nil {
		return mockup{}, err
	}

	return mockup{
		Width:      500,
		FontFamily: systemFontStack,
		Palette:    pal,
		Body:       body,
	}, nil
}

// facebookReactionTotal counts like, love and haha reactions when a
// breakdown is present, otherwise plain likes
func facebookReactionTotal(m types.Metrics) int {
	r := m.Reactions
	if r == nil {
		return positive(m.Likes)
	}
	return positive(r.Like) + positive(r.Love) + positive(r.Funny)
}

const facebookTemplate = `<div style="padding:12px 16px 0;">
<div style="display:flex;align-items:flex-start;justify-content:space-between;">
<div style="display:flex;align-items:center;">
<img class="avatar" src="{{.Author.Avatar}}" alt="" style="width:40px;height:40px;border-radius:50%;object-fit:cover;margin-right:8px;">
<div>
<div style="display:flex;align-items:center;"><span class="author-name" style="font-weight:600;font-size:15px;line-height:20px;color:{{.Palette.Text}};">{{.Author.Name}}</span>{{if .Author.Verified}}{{.Author.Badge}}{{end}}</div>
<div style="display:flex;align-items:center;font-size:13px;line-height:16px;color:{{.Palette.Secondary}};">
<span class="post-date">{{.Date}}</span><span style="margin:0 4px;">·</span><span class="post-privacy" data-privacy="{{.Privacy}}" style="display:inline-block;">{{.Audience}}</span>
</div>
</div>
</div>
<div style="padding:4px;">{{.More}}</div>
</div>
<div class="post-content" style="margin-top:12px;font-size:15px;line-height:20px;white-space:pre-wrap;word-wrap:break-word;overflow-wrap:break-word;color:{{.Palette.Text}};">{{.Content}}</div>
</div>
{{- with .Image}}
<div class="images" data-layout="single" style="margin-top:12px;"><img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;"></div>
{{- end}}
{{- if or .Total .Comments .Shares}}
<div class="post-stats" style="padding:10px 16px;display:flex;align-items:center;justify-content:space-between;font-size:15px;color:{{.Palette.Secondary}};">
<div style="display:flex;align-items:center;">
{{- if .Total}}
<span style="display:flex;">{{range .Badges}}<span style="margin-right:-2px;">{{.}}</span>{{end}}</span>
<span class="reaction-total" style="margin-left:6px;">{{.Total}}</span>
{{- end}}
</div>
<div style="display:flex;align-items:center;">
{{- if .Comments}}<span style="margin-right:8px;">{{.Comments}} comments</span>{{end}}
{{- if .Shares}}<span>{{.Shares}} shares</span>{{end}}
</div>
</div>
{{- end}}
<div class="post-actions" style="margin:0 16px;padding:4px 0;display:flex;align-items:center;justify-content:space-around;border-top:1px solid {{.Palette.Border}};">
{{- range .Actions}}
<div style="display:flex;align-items:center;padding:8px 12px;font-size:15px;font-weight:600;color:{{$.Palette.Secondary}};">{{.Icon}}<span style="margin-left:8px;">{{.Label}}</span></div>
{{- end}}
</div>`
