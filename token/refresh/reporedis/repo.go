// Package redissessionrepo provides a Redis-backed refresh.Repo. Each user's
// session lives under a single key, so SET replaces the previous session
// atomically and the key TTL garbage-collects sessions whose refresh token
// has expired anyway.
package redissessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-session-service/token/refresh"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refresh_session:"

var _ refresh.Repo = (*RedisSessionRepo)(nil)

type RedisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepo wraps client. ttl should be the refresh token
// lifetime; zero disables expiry.
func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{client: client, ttl: ttl}
}

func sessionKey(userID string) string {
	return keyPrefix + userID
}

func (sr *RedisSessionRepo) Upsert(ctx context.Context, session *refresh.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := sr.client.Set(ctx, sessionKey(session.UserID), payload, sr.ttl).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (sr *RedisSessionRepo) GetByUserID(ctx context.Context, userID string) (*refresh.Session, error) {
	payload, err := sr.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, refresh.ErrNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	session := &refresh.Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

func (sr *RedisSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if err := sr.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
