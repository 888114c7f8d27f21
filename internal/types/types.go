package types

import (
	"encoding/json"
	"time"
)

// Platform selects which social network a mockup imitates
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformThreads   Platform = "threads"
)

// Platforms lists every supported platform in display order
var Platforms = []Platform{
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformFacebook,
	PlatformInstagram,
	PlatformThreads,
}

// Valid reports whether p is one of the supported platforms
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Theme is the color scheme of the mockup.
// Dim only differs from dark on Twitter.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeDim   Theme = "dim"
)

// Themes lists every supported theme
var Themes = []Theme{ThemeLight, ThemeDark, ThemeDim}

// IsDark reports whether the theme uses a dark palette
func (t Theme) IsDark() bool {
	return t == ThemeDark || t == ThemeDim
}

// Privacy is the Facebook audience selector
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends"
	PrivacyOnlyMe  Privacy = "only_me"
)

// VerifiedType picks the verified badge color
type VerifiedType string

const (
	VerifiedBlue VerifiedType = "blue"
	VerifiedGold VerifiedType = "gold"
	VerifiedGray VerifiedType = "gray"
)

// MaxImages is the largest number of images a post can carry
const MaxImages = 4

// Author is the account shown as the poster
type Author struct {
	Name             string       `json:"name"`
	Handle           string       `json:"handle"`
	Avatar           string       `json:"avatar"`
	Verified         bool         `json:"verified"`
	VerifiedType     VerifiedType `json:"verifiedType,omitempty"`
	Headline         string       `json:"headline,omitempty"`         // LinkedIn
	ConnectionDegree string       `json:"connectionDegree,omitempty"` // LinkedIn: 1st, 2nd, 3rd
}

// UnmarshalJSON also accepts avatarUrl, which some clients send instead of avatar
func (a *Author) UnmarshalJSON(data []byte) error {
	type plain Author
	var aux struct {
		plain
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = Author(aux.plain)
	if a.Avatar == "" {
		a.Avatar = aux.AvatarURL
	}
	return nil
}

// Reactions holds LinkedIn/Facebook reaction counts
type Reactions struct {
	Like       int `json:"like"`
	Celebrate  int `json:"celebrate"`
	Support    int `json:"support"`
	Love       int `json:"love"`
	Insightful int `json:"insightful"`
	Funny      int `json:"funny"`
}

// Total sums all reaction counts, ignoring negative values
func (r Reactions) Total() int {
	total := 0
	for _, n := range []int{r.Like, r.Celebrate, r.Support, r.Love, r.Insightful, r.Funny} {
		if n > 0 {
			total += n
		}
	}
	return total
}

// Metrics are the engagement counters. Fields a platform doesn't show are ignored.
type Metrics struct {
	Likes     int        `json:"likes"`
	Comments  int        `json:"comments"`
	Reposts   int        `json:"reposts"`
	Quotes    int        `json:"quotes,omitempty"`    // Twitter
	Bookmarks int        `json:"bookmarks,omitempty"` // Twitter
	Views     int        `json:"views,omitempty"`     // Twitter
	Reactions *Reactions `json:"reactions,omitempty"` // LinkedIn/Facebook
}

// Image is an attached post image
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Post is the full description of one mockup
type Post struct {
	Platform  Platform  `json:"platform"`
	Theme     Theme     `json:"theme"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Metrics   Metrics   `json:"metrics"`
	Images    []Image   `json:"images"`
	Client    string    `json:"client,omitempty"`  // Twitter: "Twitter for iPhone"
	Privacy   Privacy   `json:"privacy,omitempty"` // Facebook
}

// DefaultAuthor is the placeholder author for a fresh post
var DefaultAuthor = Author{
	Name:     "John Doe",
	Handle:   "johndoe",
	Avatar:   "",
	Verified: false,
}

// DefaultMetrics are the placeholder counters for a fresh post
var DefaultMetrics = Metrics{
	Likes:     142,
	Comments:  23,
	Reposts:   47,
	Quotes:    8,
	Bookmarks: 12,
	Views:     5420,
}

// DefaultPost returns the editor's starting state for a platform
func DefaultPost(platform Platform, now time.Time) Post {
	p := Post{
		Platform:  platform,
		Theme:     ThemeLight,
		Author:    DefaultAuthor,
		Content:   "Your post content goes here. Click to edit this text.",
		Timestamp: now,
		Metrics:   DefaultMetrics,
		Images:    []Image{},
	}

	switch platform {
	case PlatformTwitter:
		p.Client = "Twitter for iPhone"
	case PlatformFacebook:
		p.Privacy = PrivacyPublic
	case PlatformLinkedIn:
		p.Author.Headline = "Senior Software Engineer at Tech Company"
		p.Author.ConnectionDegree = "1st"
		p.Metrics.Reactions = &Reactions{
			Like:       89,
			Celebrate:  23,
			Support:    12,
			Love:       8,
			Insightful: 7,
			Funny:      3,
		}
	}

	return p
}
