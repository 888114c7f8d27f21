package store

import (
	"time"

	"github.com/ibeckermayer/mockshot/internal/types"
)

// Profile is a saved author that can be applied to new mockups
type Profile struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Author    types.Author `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Export status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Export is one recorded capture attempt
type Export struct {
	ID        string         `json:"id"`
	Platform  types.Platform `json:"platform"`
	Theme     types.Theme    `json:"theme"`
	Scale     int            `json:"scale"`
	Bytes     int            `json:"bytes"`
	Duration  time.Duration  `json:"duration"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ExportStats summarizes recorded exports per platform
type ExportStats struct {
	Platform  types.Platform `json:"platform"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Bytes     int64          `json:"bytes"`
}
