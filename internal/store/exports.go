package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ibeckermayer/mockshot/internal/types"
)

// RecordExport saves one capture attempt
func (s *Store) RecordExport(ctx context.Context, e Export) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Status == "" {
		e.Status = StatusOK
		if e.Error != "" {
			e.Status = StatusError
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (id, platform, theme, scale, bytes, duration_ms, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, string(e.Platform), string(e.Theme), e.Scale, e.Bytes,
		e.Duration.Milliseconds(), e.Status, nullString(e.Error), e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record export %s: %w", e.ID, err)
	}
	return nil
}

// ListExports returns the most recent exports first
func (s *Store) ListExports(ctx context.Context, limit int) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, platform, theme, scale, bytes, duration_ms, status, error, created_at
		FROM exports
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exports := []Export{}
	for rows.Next() {
		var e Export
		var platform, theme, errMsg sql.NullString
		var durationMS, createdAt int64

		err := rows.Scan(&e.ID, &platform, &theme, &e.Scale, &e.Bytes,
			&durationMS, &e.Status, &errMsg, &createdAt)
		if err != nil {
			return nil, err
		}

		e.Platform = types.Platform(platform.String)
		e.Theme = types.Theme(theme.String)
		e.Error = errMsg.String
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

// Stats returns per-platform export counts, ordered by platform
func (s *Store) Stats(ctx context.Context) ([]ExportStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT platform,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = ? THEN 0 ELSE 1 END),
			SUM(bytes)
		FROM exports
		GROUP BY platform
		ORDER BY platform
	`, StatusOK, StatusOK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []ExportStats{}
	for rows.Next() {
		var st ExportStats
		var platform string
		if err := rows.Scan(&platform, &st.Succeeded, &st.Failed, &st.Bytes); err != nil {
			return nil, err
		}
		st.Platform = types.Platform(platform)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// PruneExports deletes exports recorded before cutoff and returns how many were removed
func (s *Store) PruneExports(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exports WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune exports: %w", err)
	}
	return res.RowsAffected()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
