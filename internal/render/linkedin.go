package render

import (
	"html/template"
	"sort"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

const defaultConnectionDegree = "1st"

var linkedInIconPaths = map[string]string{
	"like":       "M19.46 11l-3.91-3.91a7 7 0 01-1.69-2.74l-.49-1.47A2.76 2.76 0 0010.76 1 2.75 2.75 0 008 3.74v1.12a9.19 9.19 0 00.46 2.85L8.89 9H4.12A2.12 2.12 0 002 11.12a2.16 2.16 0 00.92 1.76 2.11 2.11 0 00-.92 1.74 2.14 2.14 0 001 1.8 2.12 2.12 0 00-.74 1.61A2.12 2.12 0 004.38 20h6.88a7 7 0 003.26-.8l1.77-.9a3.32 3.32 0 001.59-1.91l1.75-4.47a2.18 2.18 0 00-.17-2.02z",
	"celebrate":  "M11.08 5.83l.53.53 1.06-1.06-.53-.53a1 1 0 00-1.42 0l-3.18 3.18a1 1 0 000 1.42l.53.53 1.06-1.06-.53-.53 2.48-2.48zM21 12l-4.37-4.37L12.89 3.9a3 3 0 00-4.24 0L5.47 7.08a3 3 0 000 4.24l3.73 3.74L4.83 19.4a1.5 1.5 0 002.12 2.12l4.34-4.37 3.74 3.73a3 3 0 004.24 0l3.18-3.18a3 3 0 000-4.24L21 12z",
	"support":    "M12.26 21.22l-.26.27-.26-.27C6.61 16.54 3 12.91 3 9.5 3 6.42 5.42 4 8.5 4c1.74 0 3.41.81 4.5 2.09C14.09 4.81 15.76 4 17.5 4 20.58 4 23 6.42 23 9.5c0 3.41-3.61 7.04-8.74 11.72z",
	"love":       "M12 21.638l-.846-.681C5.662 16.31 2 13.088 2 9.192 2 6.074 4.463 3.5 7.5 3.5c1.74 0 3.41.81 4.5 2.09C13.09 4.31 14.76 3.5 16.5 3.5 19.537 3.5 22 6.074 22 9.192c0 3.896-3.662 7.118-9.154 11.765l-.846.681z",
	"insightful": "M12 2a9 9 0 00-9 9 8.93 8.93 0 003.61 7.2l-.62 2.48A1.5 1.5 0 007.44 23h9.12a1.5 1.5 0 001.45-1.88l-.55-2.2A9 9 0 0012 2z",
	"funny":      "M12 2a10 10 0 1010 10A10 10 0 0012 2zm4 9a1.5 1.5 0 10-1.5-1.5A1.5 1.5 0 0016 11zm-4.5-1.5A1.5 1.5 0 108 11a1.5 1.5 0 003.5-1.5zM12 17.5c2.33 0 4.32-1.45 5.12-3.5H6.88c.8 2.05 2.79 3.5 5.12 3.5z",
	"comment":    "M7 9h10v1H7zm0 4h7v-1H7zm16-2a9 9 0 01-9 9h-4l-4.28 4.28a1 1 0 01-1.71-.71V11a9 9 0 019-9 9 9 0 019 9zM9.46 19H14a7 7 0 000-14 7 7 0 00-7 7v7.46l1.29-1.29A1 1 0 019 19a.37.37 0 00.46 0z",
	"repost":     "M13.96 5H6c-1.1 0-2 .9-2 2v10l2-2V7h7.96l-2 2.03 1.41 1.41L17.79 6l-4.42-4.41L11.96 3l2 2zm4.04 14H11l2-2.03-1.41-1.41L7.17 20l4.42 4.41L13 22.96l-2-2H18c1.1 0 2-.9 2-2V9l-2 2v8z",
	"send":       "M21 3L0 10l7.66 4.26L16 8l-6.26 8.34L14 24l7-21z",
	"more":       "M14 12a2 2 0 11-4 0 2 2 0 014 0zm6 0a2 2 0 11-4 0 2 2 0 014 0zM8 12a2 2 0 11-4 0 2 2 0 014 0z",
	"globe":      "M12 2a10 10 0 100 20 10 10 0 000-20zm0 2a8 8 0 017.75 6H16.9a15 15 0 00-2.1-5.5A8 8 0 0112 4zm-2.8.5A15 15 0 007.1 10H4.25A8 8 0 019.2 4.5zM4.25 14H7.1a15 15 0 002.1 5.5A8 8 0 014.25 14zm10.55 5.5a15 15 0 002.1-5.5h2.85a8 8 0 01-4.95 5.5zM12 19.6A13 13 0 019.1 14h5.8A13 13 0 0112 19.6zM9.1 10A13 13 0 0112 4.4a13 13 0 012.9 5.6z",
}

var reactionColors = map[string]template.CSS{
	"like":       "#378fe9",
	"celebrate":  "#44712e",
	"support":    "#715b8d",
	"love":       "#df704d",
	"insightful": "#f5bb5c",
	"funny":      "#63a7d4",
}

type action struct {
	Icon  template.HTML
	Label string
}

type linkedInView struct {
	Palette   palette
	Author    authorView
	Date      string
	Globe     template.HTML
	More      template.HTML
	Content   string
	Image     *imageView
	Reactions []template.HTML
	Total     string
	Comments  string
	Reposts   string
	Actions   []action
}

func renderLinkedIn(sp serializer.SerializedPost) (mockup, error) {
	pal := paletteFor(linkedInPalettes, sp.Theme)

	degree := sp.Author.ConnectionDegree
	if degree == "" {
		degree = defaultConnectionDegree
	}
	author := newAuthorView(sp.Author, pal.Accent, 16)
	author.Degree = degree

	v := linkedInView{
		Palette: pal,
		Author:  author,
		Date:    linkedInDate(timestampOf(sp)),
		Globe:   icon(linkedInIconPaths["globe"], pal.Secondary, 12),
		More:    icon(linkedInIconPaths["more"], pal.Secondary, 24),
		Content: sp.Content,
		Image:   firstImage(sp.Images),
	}

	total := positive(sp.Metrics.Likes)
	if r := sp.Metrics.Reactions; r != nil {
		total = r.Total()
	}
	if total > 0 {
		v.Total = FormatCount(total)
		for _, name := range topReactions(sp.Metrics.Reactions, 3) {
			v.Reactions = append(v.Reactions, icon(linkedInIconPaths[name], reactionColors[name], 16))
		}
	}
	if n := positive(sp.Metrics.Comments); n > 0 {
		v.Comments = FormatCount(n)
	}
	if n := positive(sp.Metrics.Reposts); n > 0 {
		v.Reposts = FormatCount(n)
	}

	for _, a := range []struct{ icon, label string }{
		{"like", "Like"},
		{"comment", "Comment"},
		{"repost", "Repost"},
		{"send", "Send"},
	} {
		v.Actions = append(v.Actions, action{
			Icon:  icon(linkedInIconPaths[a.icon], pal.Secondary, 20),
			Label: a.label,
		})
	}

	body, err := execute("linkedin", v)
	if err != nil {
		return mockup{}, err
	}

	return mockup{
		Width:      552,
		FontFamily: systemFontStack,
		Palette:    pal,
		Body:       body,
	}, nil
}

// topReactions returns the names of the n largest non-zero reactions.
// Ties keep the LinkedIn display order. Without a breakdown only "like" shows.
func topReactions(r *types.Reactions, n int) []string {
	if r == nil {
		return []string{"like"}
	}

	type entry struct {
		name  string
		count int
	}
	entries := []entry{
		{"like", r.Like},
		{"celebrate", r.Celebrate},
		{"support", r.Support},
		{"love", r.Love},
		{"insightful", r.Insightful},
		{"funny", r.Funny},
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	var names []string
	for _, e := range entries {
		if e.count <= 0 || len(names) == n {
			break
		}
		names = append(names, e.name)
	}
	return names
}

// firstImage is the single image non-Twitter layouts show
func firstImage(images []types.Image) *imageView {
	views := imageViews(images, 1)
	if len(views) == 0 {
		return nil
	}
	return &views[0]
}

const linkedInTemplate = `<div style="padding:12px 16px 0;">
<div style="display:flex;align-items:flex-start;">
<div style="flex-shrink:0;margin-right:8px;"><img class="avatar" src="{{.Author.Avatar}}" alt="" style="width:48px;height:48px;border-radius:50%;object-fit:cover;"></div>
<div style="flex:1;min-width:0;">
<div style="display:flex;align-items:center;">
<span class="author-name" style="font-weight:600;font-size:14px;line-height:20px;color:{{.Palette.Text}};">{{.Author.Name}}</span>{{if .Author.Verified}}{{.Author.Badge}}{{end}}
<span class="connection-degree" style="margin-left:4px;font-size:14px;color:{{.Palette.Secondary}};">• {{.Author.Degree}}</span>
</div>
{{- if .Author.Headline}}
<div class="author-headline" style="font-size:12px;line-height:16px;white-space:nowrap;overflow:hidden;text-overflow:ellipsis;color:{{.Palette.Secondary}};">{{.Author.Headline}}</div>
{{- end}}
<div style="display:flex;align-items:center;font-size:12px;line-height:16px;color:{{.Palette.Secondary}};">
<span class="post-date">{{.Date}}</span><span style="margin:0 4px;">•</span><span style="display:inline-block;">{{.Globe}}</span>
</div>
</div>
<div style="padding:4px;">{{.More}}</div>
</div>
<div class="post-content" style="margin-top:8px;font-size:14px;line-height:20px;white-space:pre-wrap;word-wrap:break-word;overflow-wrap:break-word;color:{{.Palette.Text}};">{{.Content}}</div>
</div>
{{- with .Image}}
<div class="images" data-layout="single" style="margin-top:8px;"><img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;"></div>
{{- end}}
{{- if or .Total .Comments .Reposts}}
<div class="post-stats" style="margin:0 16px;padding:8px 0;display:flex;align-items:center;justify-content:space-between;font-size:12px;border-bottom:1px solid {{.Palette.Border}};color:{{.Palette.Secondary}};">
<div style="display:flex;align-items:center;">
{{- if .Total}}
<span style="display:flex;margin-right:4px;">{{range .Reactions}}<span style="margin-right:-2px;">{{.}}</span>{{end}}</span>
<span class="reaction-total">{{.Total}}</span>
{{- end}}
</div>
<div style="display:flex;align-items:center;">
{{- if .Comments}}<span>{{.Comments}} comments</span>{{end}}
{{- if and .Comments .Reposts}}<span style="margin:0 4px;">•</span>{{end}}
{{- if .Reposts}}<span>{{.Reposts}} reposts</span>{{end}}
</div>
</div>
{{- end}}
<div class="post-actions" style="padding:4px 8px;display:flex;align-items:center;justify-content:space-between;">
{{- range .Actions}}
<div style="display:flex;align-items:center;padding:12px 8px;font-size:14px;font-weight:600;color:{{$.Palette.Secondary}};">{{.Icon}}<span style="margin-left:4px;">{{.Label}}</span></div>
{{- end}}
</div>`
