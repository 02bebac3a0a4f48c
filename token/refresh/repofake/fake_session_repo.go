package refreshrepofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-session-service/token/refresh"
)

var _ refresh.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions map[string]*refresh.Session // user id to session
	lock     sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]*refresh.Session),
	}
}

func (sr *FakeSessionRepo) Upsert(ctx context.Context, session *refresh.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	stored := *session
	sr.sessions[session.UserID] = &stored
	return nil
}

func (sr *FakeSessionRepo) GetByUserID(ctx context.Context, userID string) (*refresh.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.sessions[userID]
	if !ok {
		return nil, refresh.ErrNotFound
	}
	return session, nil
}

func (sr *FakeSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	delete(sr.sessions, userID)
	return nil
}

// Len reports the number of stored sessions, for asserting the
// one-session-per-user invariant in tests.
func (sr *FakeSessionRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.sessions)
}
