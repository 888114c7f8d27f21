package render

import (
	"html/template"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

const defaultTwitterClient = "Twitter for iPhone"

var twitterIconPaths = map[string]string{
	"comment":  "M1.751 10c0-4.42 3.584-8 8.005-8h4.366c4.49 0 8.129 3.64 8.129 8.13 0 2.96-1.607 5.68-4.196 7.11l-8.054 4.46v-3.69h-.067c-4.49.1-8.183-3.51-8.183-8.01zm8.005-6c-3.317 0-6.005 2.69-6.005 6 0 3.37 2.77 6.08 6.138 6.01l.351-.01h1.761v2.3l5.087-2.81c1.951-1.08 3.163-3.13 3.163-5.36 0-3.39-2.744-6.13-6.129-6.13H9.756z",
	"retweet":  "M4.5 3.88l4.432 4.14-1.364 1.46L5.5 7.55V16c0 1.1.896 2 2 2H13v2H7.5c-2.209 0-4-1.79-4-4V7.55L1.432 9.48.068 8.02 4.5 3.88zM16.5 6H11V4h5.5c2.209 0 4 1.79 4 4v8.45l2.068-1.93 1.364 1.46-4.432 4.14-4.432-4.14 1.364-1.46 2.068 1.93V8c0-1.1-.896-2-2-2z",
	"like":     "M16.697 5.5c-1.222-.06-2.679.51-3.89 2.16l-.805 1.09-.806-1.09C9.984 6.01 8.526 5.44 7.304 5.5c-1.243.07-2.349.78-2.91 1.91-.552 1.12-.633 2.78.479 4.82 1.074 1.97 3.257 4.27 7.129 6.61 3.87-2.34 6.052-4.64 7.126-6.61 1.111-2.04 1.03-3.7.477-4.82-.561-1.13-1.666-1.84-2.908-1.91z",
	"views":    "M8.75 21V3h2v18h-2zM18 21V8.5h2V21h-2zM4 21l.004-10h2L6 21H4zm9.248 0v-7h2v7h-2z",
	"bookmark": "M4 4.5C4 3.12 5.119 2 6.5 2h11C18.881 2 20 3.12 20 4.5v18.44l-8-5.71-8 5.71V4.5zM6.5 4c-.276 0-.5.22-.5.5v14.56l6-4.29 6 4.29V4.5c0-.28-.224-.5-.5-.5h-11z",
	"share":    "M12 2.59l5.7 5.7-1.41 1.42L13 6.41V16h-2V6.41l-3.3 3.3-1.41-1.42L12 2.59zM21 15l-.02 3.51c0 1.38-1.12 2.49-2.5 2.49H5.5C4.11 21 3 19.88 3 18.5V15h2v3.5c0 .28.22.5.5.5h12.98c.28 0 .5-.22.5-.5L19 15h2z",
	"more":     "M3 12c0-1.1.9-2 2-2s2 .9 2 2-.9 2-2 2-2-.9-2-2zm9 2c1.1 0 2-.9 2-2s-.9-2-2-2-2 .9-2 2 .9 2 2 2zm7 0c1.1 0 2-.9 2-2s-.9-2-2-2-2 .9-2 2 .9 2 2 2z",
}

type stat struct {
	Value string
	Label string
}

type twitterView struct {
	Palette   palette
	Author    authorView
	Content   string
	ShortDate string
	Detail    string
	Client    string
	Views     string
	Layout    string
	Images    []imageView
	Stats     []stat
	Icons     map[string]template.HTML
}

func renderTwitter(sp serializer.SerializedPost) (mockup, error) {
	pal := paletteFor(twitterPalettes, sp.Theme)
	ts := timestampOf(sp)

	images := imageViews(sp.Images, types.MaxImages)

	client := sp.Client
	if client == "" {
		client = defaultTwitterClient
	}

	v := twitterView{
		Palette:   pal,
		Author:    newAuthorView(sp.Author, pal.Accent, 18),
		Content:   sp.Content,
		ShortDate: twitterShortDate(ts),
		Detail:    twitterDetailDate(ts),
		Client:    client,
		Layout:    ImageLayout(len(images)),
		Images:    images,
		Stats:     twitterStats(sp.Metrics),
		Icons:     make(map[string]template.HTML, len(twitterIconPaths)),
	}
	if views := positive(sp.Metrics.Views); views > 0 {
		v.Views = FormatCount(views)
	}
	for name, path := range twitterIconPaths {
		v.Icons[name] = icon(path, pal.Secondary, 20)
	}

	body, err := execute("twitter", v)
	if err != nil {
		return mockup{}, err
	}

	return mockup{
		Width:      598,
		FontFamily: systemFontStack,
		Palette:    pal,
		Body:       body,
	}, nil
}

// twitterStats builds the engagement row, skipping zero counts
func twitterStats(m types.Metrics) []stat {
	var stats []stat
	add := func(n int, label string) {
		if n = positive(n); n > 0 {
			stats = append(stats, stat{Value: FormatCount(n), Label: label})
		}
	}
	add(m.Reposts, "Reposts")
	add(m.Quotes, "Quotes")
	add(m.Likes, "Likes")
	add(m.Bookmarks, "Bookmarks")
	return stats
}

const systemFontStack template.CSS = `-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif`

const twitterTemplate = `<div style="padding:12px 16px;">
<div style="display:flex;align-items:flex-start;">
<div style="flex-shrink:0;margin-right:12px;"><img class="avatar" src="{{.Author.Avatar}}" alt="" style="width:40px;height:40px;border-radius:50%;object-fit:cover;"></div>
<div style="flex:1;min-width:0;">
<div style="display:flex;align-items:center;justify-content:space-between;">
<div style="display:flex;align-items:center;flex-wrap:wrap;min-width:0;">
<span class="author-name" style="font-weight:700;font-size:15px;line-height:20px;color:{{.Palette.Text}};">{{.Author.Name}}</span>{{if .Author.Verified}}{{.Author.Badge}}{{end}}
<span class="author-handle" style="font-size:15px;line-height:20px;margin-left:4px;color:{{.Palette.Secondary}};">@{{.Author.Handle}}</span>
<span style="margin:0 4px;color:{{.Palette.Secondary}};">·</span>
<span class="post-date" style="font-size:15px;color:{{.Palette.Secondary}};">{{.ShortDate}}</span>
</div>
<div style="padding:8px;">{{index .Icons "more"}}</div>
</div>
<div class="post-content" style="margin-top:4px;font-size:15px;line-height:20px;white-space:pre-wrap;word-wrap:break-word;overflow-wrap:break-word;color:{{.Palette.Text}};">{{.Content}}</div>
{{- if .Images}}
<div class="images" data-layout="{{.Layout}}" style="margin-top:12px;border-radius:16px;overflow:hidden;border:1px solid {{.Palette.Border}};">
{{- if eq .Layout "single"}}
{{- with index .Images 0}}<img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;max-height:510px;">{{end}}
{{- else if eq .Layout "pair"}}
<div style="display:flex;gap:2px;">{{range .Images}}<img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="flex:1 1 0;min-width:0;height:286px;">{{end}}</div>
{{- else if eq .Layout "triple"}}
<div style="display:flex;gap:2px;height:286px;">
{{- with index .Images 0}}<img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="flex:1 1 0;min-width:0;height:286px;">{{end}}
<div style="flex:1 1 0;min-width:0;display:flex;flex-direction:column;gap:2px;">
{{- with index .Images 1}}<img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;height:142px;">{{end}}
{{- with index .Images 2}}<img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;height:142px;">{{end}}
</div>
</div>
{{- else}}
<div style="display:grid;grid-template-columns:1fr 1fr;gap:2px;">{{range .Images}}<img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;height:143px;">{{end}}</div>
{{- end}}
</div>
{{- end}}
<div class="post-detail" style="margin-top:12px;display:flex;align-items:center;flex-wrap:wrap;font-size:15px;color:{{.Palette.Secondary}};">
<span>{{.Detail}}</span>
<span style="margin:0 4px;">·</span>
<span class="post-client" style="color:{{.Palette.Accent}};">{{.Client}}</span>
{{- if .Views}}
<span style="margin:0 4px;">·</span>
<span><span style="font-weight:700;color:{{.Palette.Text}};">{{.Views}}</span> Views</span>
{{- end}}
</div>
{{- if .Stats}}
<div class="post-stats" style="margin-top:12px;padding:12px 0;display:flex;align-items:center;font-size:15px;border-top:1px solid {{.Palette.Border}};">
{{- range .Stats}}
<div style="display:flex;align-items:center;margin-right:20px;"><span style="font-weight:700;margin-right:4px;color:{{$.Palette.Text}};">{{.Value}}</span><span style="color:{{$.Palette.Secondary}};">{{.Label}}</span></div>
{{- end}}
</div>
{{- end}}
<div class="post-actions" style="margin-top:4px;padding:4px 0;display:flex;align-items:center;justify-content:space-between;max-width:425px;border-top:1px solid {{.Palette.Border}};">
<div style="padding:8px;">{{index .Icons "comment"}}</div>
<div style="padding:8px;">{{index .Icons "retweet"}}</div>
<div style="padding:8px;">{{index .Icons "like"}}</div>
<div style="padding:8px;">{{index .Icons "bookmark"}}</div>
<div style="padding:8px;">{{index .Icons "share"}}</div>
</div>
</div>
</div>
</div>`
