package app

import (
	"context"

	"github.com/ibeckermayer/mockshot/internal/screenshot"
	"github.com/ibeckermayer/mockshot/internal/store"
)

// historyRecorder saves capture outcomes as export history
type historyRecorder struct {
	store *store.Store
}

func (r historyRecorder) Record(ctx context.Context, o screenshot.Outcome) error {
	e := store.Export{
		ID:        o.ID,
		Platform:  o.Platform,
		Theme:     o.Theme,
		Scale:     o.Scale,
		Bytes:     o.Bytes,
		Duration:  o.Duration,
		Status:    store.StatusOK,
		CreatedAt: o.At,
	}
	if o.Err != nil {
		e.Status = store.StatusError
		e.Error = o.Err.Error()
	}
	return r.store.RecordExport(ctx, e)
}
