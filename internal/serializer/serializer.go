// Package serializer converts posts to and from their JSON wire form.
package serializer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ibeckermayer/mockshot/internal/types"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SerializedPost is a Post with its timestamp as an ISO-8601 string
type SerializedPost struct {
	Platform  types.Platform `json:"platform"`
	Theme     types.Theme    `json:"theme"`
	Author    types.Author   `json:"author"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Metrics   types.Metrics  `json:"metrics"`
	Images    []types.Image  `json:"images"`
	Client    string         `json:"client,omitempty"`
	Privacy   types.Privacy  `json:"privacy,omitempty"`
}

// MarshalJSON writes nil images as an empty array
func (sp SerializedPost) MarshalJSON() ([]byte, error) {
	type plain SerializedPost
	out := plain(sp)
	if out.Images == nil {
		out.Images = []types.Image{}
	}
	return json.Marshal(out)
}

// Request is the body of a screenshot request
type Request struct {
	Mockup *SerializedPost `json:"mockup"`
	Scale  int             `json:"scale,omitempty"`
}

// ErrorResponse is the body returned when an export fails
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Serialize copies a post into its wire form. The result shares no slices
// or pointers with p, so later edits to p don't leak into an in-flight export.
// Timestamps outside years 0000-9999 have no ISO-8601 form; Deserialize
// rejects what Serialize produces for them.
func Serialize(p types.Post) SerializedPost {
	return SerializedPost{
		Platform:  p.Platform,
		Theme:     p.Theme,
		Author:    p.Author,
		Content:   p.Content,
		Timestamp: p.Timestamp.UTC().Format(TimestampLayout),
		Metrics:   copyMetrics(p.Metrics),
		Images:    copyImages(p.Images),
		Client:    p.Client,
		Privacy:   p.Privacy,
	}
}

// Deserialize rebuilds a post from its wire form.
// Only the timestamp is converted; everything else passes through.
func Deserialize(sp SerializedPost) (types.Post, error) {
	ts, err := ParseTimestamp(sp.Timestamp)
	if err != nil {
		return types.Post{}, err
	}

	return types.Post{
		Platform:  sp.Platform,
		Theme:     sp.Theme,
		Author:    sp.Author,
		Content:   sp.Content,
		Timestamp: ts,
		Metrics:   sp.Metrics,
		Images:    sp.Images,
		Client:    sp.Client,
		Privacy:   sp.Privacy,
	}, nil
}

// ParseTimestamp parses an ISO-8601 timestamp, fractional seconds optional
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return ts.UTC(), nil
}

func copyMetrics(m types.Metrics) types.Metrics {
	if m.Reactions != nil {
		r := *m.Reactions
		m.Reactions = &r
	}
	return m
}

func copyImages(images []types.Image) []types.Image {
	if images == nil {
		return nil
	}
	out := make([]types.Image, len(images))
	copy(out, images)
	return out
}
