package render

import (
	"fmt"
	"html/template"

	"github.com/ibeckermayer/mockshot/internal/serializer"
)

// Instagram and Threads draw outlined icons
var outlineIconPaths = map[string]string{
	"heart":    "M20.84 4.61a5.5 5.5 0 0 0-7.78 0L12 5.67l-1.06-1.06a5.5 5.5 0 0 0-7.78 7.78l1.06 1.06L12 21.23l7.78-7.78 1.06-1.06a5.5 5.5 0 0 0 0-7.78z",
	"comment":  "M21 11.5a8.38 8.38 0 0 1-.9 3.8 8.5 8.5 0 0 1-7.6 4.7 8.38 8.38 0 0 1-3.8-.9L3 21l1.9-5.7a8.38 8.38 0 0 1-.9-3.8 8.5 8.5 0 0 1 4.7-7.6 8.38 8.38 0 0 1 3.8-.9h.5a8.48 8.48 0 0 1 8 8v.5z",
	"share":    "M22 2L11 13M22 2l-7 20-4-9-9-4 20-7z",
	"bookmark": "M19 21l-7-5-7 5V5a2 2 0 0 1 2-2h10a2 2 0 0 1 2 2z",
	"repost":   "M17 1l4 4-4 4M3 11V9a4 4 0 0 1 4-4h14M7 23l-4-4 4-4M21 13v2a4 4 0 0 1-4 4H3",
	"more":     "M6 12h.01M12 12h.01M18 12h.01",
}

func outlineIcon(name string, color template.CSS, size int) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" style="width:%dpx;height:%dpx;display:block;"><path fill="none" stroke="%s" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" d="%s"/></svg>`,
		size, size, color, outlineIconPaths[name],
	))
}

type instagramView struct {
	Palette  palette
	Author   authorView
	Image    *imageView
	Icons    map[string]template.HTML
	Likes    string
	Content  string
	Comments string
	Date     string
}

func renderInstagram(sp serializer.SerializedPost) (mockup, error) {
	pal := paletteFor(instagramPalettes, sp.Theme)

	v := instagramView{
		Palette: pal,
		Author:  newAuthorView(sp.Author, pal.Accent, 12),
		Image:   firstImage(sp.Images),
		Icons:   make(map[string]template.HTML, len(outlineIconPaths)),
		Content: sp.Content,
		Date:    instagramDate(timestampOf(sp)),
	}
	for name := range outlineIconPaths {
		v.Icons[name] = outlineIcon(name, pal.Text, 24)
	}
	if n := positive(sp.Metrics.Likes); n > 0 {
		v.Likes = FormatCountLower(n)
	}
	if n := positive(sp.Metrics.Comments); n > 0 {
		v.Comments = FormatCountLower(n)
	}

	body, err := execute("instagram", v)
	if err != nil {
		return mockup{}, err
	}

	return mockup{
		Width:      468,
		FontFamily: systemFontStack,
		Palette:    pal,
		Body:       body,
	}, nil
}

const instagramTemplate = `<div style="border:1px solid {{.Palette.Border}};border-radius:8px;overflow:hidden;">
<div style="padding:10px 12px;display:flex;align-items:center;justify-content:space-between;">
<div style="display:flex;align-items:center;">
<img class="avatar" src="{{.Author.Avatar}}" alt="" style="width:32px;height:32px;border-radius:50%;object-fit:cover;margin-right:10px;">
<span class="author-handle" style="font-weight:600;font-size:14px;color:{{.Palette.Text}};">{{.Author.Handle}}</span>{{if .Author.Verified}}{{.Author.Badge}}{{end}}
</div>
<div>{{index .Icons "more"}}</div>
</div>
{{- with .Image}}
<div class="images" data-layout="single" style="width:100%;aspect-ratio:1/1;overflow:hidden;"><img class="image-cell" src="{{.URL}}" alt="{{.Alt}}" style="width:100%;height:100%;"></div>
{{- else}}
<div class="image-placeholder" style="width:100%;aspect-ratio:1/1;display:flex;align-items:center;justify-content:center;font-size:14px;background-color:{{.Palette.Placeholder}};color:{{.Palette.Secondary}};">No image</div>
{{- end}}
<div style="padding:8px 12px 0;display:flex;align-items:center;justify-content:space-between;">
<div style="display:flex;align-items:center;gap:16px;">{{index .Icons "heart"}}{{index .Icons "comment"}}{{index .Icons "share"}}</div>
<div>{{index .Icons "bookmark"}}</div>
</div>
<div style="padding:8px 12px 12px;font-size:14px;line-height:18px;color:{{.Palette.Text}};">
{{- if .Likes}}
<div class="post-likes" style="font-weight:600;margin-bottom:6px;">{{.Likes}} likes</div>
{{- end}}
{{- if .Content}}
<div class="post-content" style="white-space:pre-wrap;word-wrap:break-word;overflow-wrap:break-word;"><span style="font-weight:600;margin-right:4px;">{{.Author.Handle}}</span>{{.Content}}</div>
{{- end}}
{{- if .Comments}}
<div class="post-comments" style="margin-top:6px;color:{{.Palette.Secondary}};">View all {{.Comments}} comments</div>
{{- end}}
<div class="post-date" style="margin-top:6px;font-size:10px;letter-spacing:0.2px;color:{{.Palette.Secondary}};">{{.Date}}</div>
</div>
</div>`
