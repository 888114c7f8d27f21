package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ibeckermayer/mockshot/internal/types"
)

const (
	MaxProfiles       = 20
	MaxProfileNameLen = 50
)

var (
	ErrProfileNameRequired = errors.New("profile name is required")
	ErrProfileLimit        = fmt.Errorf("maximum %d profiles allowed, delete some to add more", MaxProfiles)
	ErrProfileExists       = errors.New("a profile with this name already exists")
	ErrProfileNotFound     = errors.New("profile not found")
)

// SanitizeProfileName trims name, cuts it to MaxProfileNameLen characters
// and strips characters that could break out of HTML
func SanitizeProfileName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxProfileNameLen {
		name = string(r[:MaxProfileNameLen])
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '\'', '"', '&':
			return -1
		}
		return r
	}, name)
}

// SaveProfile stores a copy of author under name
func (s *Store) SaveProfile(ctx context.Context, name string, author types.Author) (*Profile, error) {
	name = SanitizeProfileName(name)
	if name == "" {
		return nil, ErrProfileNameRequired
	}

	authorJSON, err := json.Marshal(author)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal author: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	if count >= MaxProfiles {
		return nil, ErrProfileLimit
	}

	key := strings.ToLower(name)
	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE name_key = ?)`, key).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile name: %w", err)
	}
	if exists {
		return nil, ErrProfileExists
	}

	p := &Profile{
		ID:        uuid.NewString(),
		Name:      name,
		Author:    author,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (id, name, name_key, author, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, key, string(authorJSON), p.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns saved profiles, oldest first
func (s *Store) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, author, created_at
		FROM profiles
		ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var p Profile
		var authorJSON string
		var createdAt int64

		if err := rows.Scan(&p.ID, &p.Name, &authorJSON, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(authorJSON), &p.Author); err != nil {
			return nil, fmt.Errorf("failed to unmarshal author for profile %s: %w", p.ID, err)
		}
		p.CreatedAt = time.UnixMilli(createdAt).UTC()
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a profile by ID
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
