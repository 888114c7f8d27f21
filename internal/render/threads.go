package render

import (
	"html/template"

	"github.com/ibeckermayer/mockshot/internal/serializer"
)

type threadsView struct {
	Palette palette
	Author  authorView
	Date    string
	Content string
	Image   *imageView
	Icons   map[string]template.HTML
	Replies string
	Likes   string
}

func renderThreads(sp serializer.SerializedPost) (mockup, error) {
	pal := paletteFor(threadsPalettes, sp.Theme)

	v := threadsView{
		Palette: pal,
		Author:  newAuthorView(sp.Author, pal.Accent, 14),
		Date:    threadsDate(timestampOf(sp)),
		Content: sp.Content,
		Image:   firstImage(sp.Images),
		Icons:   make(map[string]template.HTML, len(outlineIconPaths)),
	}
	for name := range outlineIconPaths {
		v.Icons[name] = outlineIcon(name, pal.Text, 20)
	}
	if n := positive(sp.Metrics.Comments); n > 0 {
		v.Replies = FormatCount(n)
	}
	if n := positive(sp.Metrics.Likes); n > 0 {
		v.Likes = FormatCount(n)
	}

	body, err := execute("threads", v)
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

const threadsTemplate = `<div style="padding:12px 16px;display:flex;align-items:flex-start;">
<div style="flex-shrink:0;margin-right:12px;"><img class="avatar" src="{{.Author.Avatar}}" alt="" style="width:36px;height:36px;border-radius:50%;object-fit:cover;"></div>
<div style="flex:1;min-width:0;">
<div style="display:flex;align-items:center;justify-content:space-between;">
<div style="display:flex;align-items:center;">
<span class="author-handle" style="font-weight:600;font-size:15px;color:{{.Palette.Text}};">{{.Author.Handle}}</span>{{if .Author.Verified}}{{.Author.Badge}}{{end}}
</div>
<div style="display:flex;align-items:center;font-size:15px;color:{{.Palette.Secondary}};"><span class="post-date">{{.Date}}</span><span style="margin-left:12px;">{{index .Icons "more"}}</span></div>
</div>
<div class="post-content" style="margin-top:2px;font-size:15px;line-height:21px;white-space:pre-wrap;word-wrap:break-word;overflow-wrap:break-word;color:{{.Palette.Text}};">{{.Content}}</div>
{{- with .Image}}
<div class="images" data-layout="single" style="margin-top:8px;border-radius:8px;overflow:hidden;border:1px solid {{$.Palette.Border}};"><img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;"></div>
{{- end}}
<div class="post-actions" style="margin-top:10px;display:flex;align-items:center;gap:16px;">{{index .Icons "heart"}}{{index .Icons "comment"}}{{index .Icons "repost"}}{{index .Icons "share"}}</div>
{{- if or .Replies .Likes}}
<div class="post-stats" style="margin-top:10px;font-size:15px;color:{{.Palette.Secondary}};">
{{- if .Replies}}<span>{{.Replies}} replies</span>{{end}}
{{- if and .Replies .Likes}}<span style="margin:0 6px;">·</span>{{end}}
{{- if .Likes}}<span>{{.Likes}} likes</span>{{end}}
</div>
{{- end}}
</div>
</div>`
