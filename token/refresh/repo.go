// Package refresh declares server-side storage of refresh sessions.
// At most one session exists per user at any time; replacing it is how a
// previously issued refresh token is invalidated.
package refresh

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a user has no stored refresh session.
var ErrNotFound = errors.New("refresh session not found")

// Session is the single active refresh session for a user. The token string
// is the exact signed token handed to the client; a presented refresh token
// is only valid while it is textually equal to the stored one.
type Session struct {
	UserID   string
	Token    string
	IssuedAt time.Time
}

// Repo manages refresh sessions keyed by user id.
//
// Upsert must replace any existing session in a single store write, so that
// two racing rotations for the same user leave exactly the last writer's
// token valid. DeleteByUserID is idempotent: deleting an absent session is
// not an error.
type Repo interface {
	Upsert(ctx context.Context, session *Session) error
	GetByUserID(ctx context.Context, userID string) (*Session, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
