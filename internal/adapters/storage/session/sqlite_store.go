package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "fitzone/internal/domain/session"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a Session by its cookie token.
// PRE: id is non-empty
// POST: Returns a complete session, or ErrNotFound. A row with any of
// api_token/user_json/role empty is deleted on read and reported as
// ErrNotFound — the three fields are valid only as a group.
func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Session, error) {
	query := "SELECT id, api_token, user_json, role, created_at FROM session WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	var entity domain.Session
	var userJSON, createdAt string
	err := row.Scan(&entity.ID, &entity.APIToken, &userJSON, &entity.Role, &createdAt)
	if err == sql.ErrNoRows {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	if entity.APIToken == "" || userJSON == "" || entity.Role == "" {
		_ = s.Delete(ctx, id)
		return domain.Session{}, ErrNotFound
	}
	if err := json.Unmarshal([]byte(userJSON), &entity.User); err != nil {
		_ = s.Delete(ctx, id)
		return domain.Session{}, ErrNotFound
	}

	entity.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse session created_at: %w", err)
	}
	return entity, nil
}

// Save persists a Session. Token, user, and role land in a single INSERT so
// the group is written atomically; there is no API to update one of them.
// PRE: entity.ID is non-empty
// POST: Entity is persisted (insert or replace)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	userJSON, err := json.Marshal(entity.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	query := `INSERT INTO session (id, api_token, user_json, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			api_token=excluded.api_token,
			user_json=excluded.user_json,
			role=excluded.role,
			created_at=excluded.created_at`

	_, err = s.db.ExecContext(ctx, query,
		entity.ID,
		entity.APIToken,
		string(userJSON),
		entity.Role,
		entity.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// Delete removes a Session.
// PRE: id is non-empty
// POST: No session row exists for id
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = ?", id)
	return err
}

// DeleteExpired removes sessions created before the cutoff.
// POST: Returns the IDs of the removed sessions, so callers can reclaim
// per-session state keyed by them (the collection caches).
func (s *SQLiteStore) DeleteExpired(ctx context.Context, cutoff time.Time) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cut := cutoff.UTC().Format(timeLayout)
	rows, err := tx.QueryContext(ctx, "SELECT id FROM session WHERE created_at < ?", cut)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM session WHERE created_at < ?", cut); err != nil {
		return nil, err
	}
	return ids, tx.Commit()
}
