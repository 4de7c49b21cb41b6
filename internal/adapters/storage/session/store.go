package session

import (
	"context"
	"errors"
	"time"

	domain "fitzone/internal/domain/session"
)

// ErrNotFound is returned when no usable session exists for a token.
// A persisted row with partial state (missing token, user, or role) is
// reported as ErrNotFound too: partial state is invalid and forces logout.
var ErrNotFound = errors.New("session not found")

// Store persists Session state so logins survive process restarts.
type Store interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, cutoff time.Time) ([]string, error)
}
