package render

import (
	"html/template"

	"github.com/ibeckermayer/mockshot/internal/types"
)

// palette holds the theme colors for one platform.
// Values are trusted constants, hence template.CSS.
type palette struct {
	Background  template.CSS
	Text        template.CSS
	Secondary   template.CSS
	Border      template.CSS
	Placeholder template.CSS
	Accent      template.CSS
}

var twitterPalettes = map[types.Theme]palette{
	types.ThemeLight: {Background: "#ffffff", Text: "#0f1419", Secondary: "#536471", Border: "#eff3f4", Placeholder: "#f7f9f9", Accent: "#1d9bf0"},
	types.ThemeDark:  {Background: "#000000", Text: "#e7e9ea", Secondary: "#71767b", Border: "#2f3336", Placeholder: "#16181c", Accent: "#1d9bf0"},
	types.ThemeDim:   {Background: "#15202b", Text: "#f7f9f9", Secondary: "#8b98a5", Border: "#38444d", Placeholder: "#1e2732", Accent: "#1d9bf0"},
}

var linkedInPalettes = map[types.Theme]palette{
	types.ThemeLight: {Background: "#ffffff", Text: "#000000", Secondary: "rgba(0,0,0,0.6)", Border: "rgba(0,0,0,0.08)", Placeholder: "#f3f2ef", Accent: "#0a66c2"},
	types.ThemeDark:  {Background: "#1d2226", Text: "#ffffff", Secondary: "rgba(255,255,255,0.6)", Border: "rgba(255,255,255,0.08)", Placeholder: "#38434f", Accent: "#0a66c2"},
}

var facebookPalettes = map[types.Theme]palette{
	types.ThemeLight: {Background: "#ffffff", Text: "#050505", Secondary: "#65676b", Border: "#dddfe2", Placeholder: "#f0f2f5", Accent: "#1877f2"},
	types.ThemeDark:  {Background: "#242526", Text: "#e4e6eb", Secondary: "#b0b3b8", Border: "#3e4042", Placeholder: "#3a3b3c", Accent: "#1877f2"},
}

var instagramPalettes = map[types.Theme]palette{
	types.ThemeLight: {Background: "#ffffff", Text: "#262626", Secondary: "#8e8e8e", Border: "#dbdbdb", Placeholder: "#fafafa", Accent: "#e1306c"},
	types.ThemeDark:  {Background: "#000000", Text: "#fafafa", Secondary: "#a8a8a8", Border: "#262626", Placeholder: "#262626", Accent: "#e1306c"},
}

var threadsPalettes = map[types.Theme]palette{
	types.ThemeLight: {Background: "#ffffff", Text: "#000000", Secondary: "#999999", Border: "#e0e0e0", Placeholder: "#f5f5f5", Accent: "#000000"},
	types.ThemeDark:  {Background: "#101010", Text: "#f3f5f7", Secondary: "#777777", Border: "#3d3d3d", Placeholder: "#1e1e1e", Accent: "#000000"},
}

// paletteFor picks the palette for a theme. Platforms without a dim
// variant render dim as dark; unknown themes render as light.
func paletteFor(palettes map[types.Theme]palette, theme types.Theme) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	if theme.IsDark() {
		return palettes[types.ThemeDark]
	}
	return palettes[types.ThemeLight]
}

// badgeColors is the fixed verified badge palette
var badgeColors = map[types.VerifiedType]string{
	types.VerifiedBlue: "#1d9bf0",
	types.VerifiedGold: "#e6a500",
	types.VerifiedGray: "#829aab",
}

func badgeColor(t types.VerifiedType) string {
	if c, ok := badgeColors[t]; ok {
		return c
	}
	return badgeColors[types.VerifiedBlue]
}
