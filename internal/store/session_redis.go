package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/redis/go-redis/v9"
)

// redisSessionStore keeps sessions as JSON values with a TTL.
type redisSessionStore struct {
	client *redis.Client
	prefix string
	logger *logger.Logger
}

// NewRedisSessionStore returns a [SessionStore] writing keys as prefix+id.
func NewRedisSessionStore(client *redis.Client, prefix string, logger *logger.Logger) SessionStore {
	logger.Debug().Msg("creating redis session store")
	return &redisSessionStore{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *redisSessionStore) Save(ctx context.Context, session models.Session, ttl time.Duration) error {
	if session.ID == "" {
		return fmt.Errorf("%w: empty session id", ErrSessionStore)
	}

	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionStore, err)
	}

	if err = s.client.Set(ctx, s.key(session.ID), encoded, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisSessionStore.Save").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrSessionStore, err)
	}

	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (models.Session, error) {
	if id == "" {
		return models.Session{}, ErrSessionNotFound
	}

	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisSessionStore.Get").Msg("failed to load session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionStore, err)
	}

	var session models.Session
	if err = json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionStore, err)
	}

	return session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisSessionStore.Delete").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrSessionStore, err)
	}

	return nil
}

func (s *redisSessionStore) key(id string) string {
	return s.prefix + id
}
