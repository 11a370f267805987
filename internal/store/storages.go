package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages groups every persistence dependency of the service layer.
type Storages struct {
	AccountRepository AccountRepository
	TokenRepository   TokenRepository
	SessionStore      SessionStore

	db    *DB
	redis *redis.Client
}

// NewStorages connects to PostgreSQL, applies migrations and opens the
// Redis session store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		_ = db.Close()
		return nil, err
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error connecting redis (ping)")
		_ = client.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrSessionStore, err)
	}
	log.Info().Str("func", "NewStorages").Msg("connected to redis successfully")

	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		TokenRepository:   NewTokenRepository(db, log),
		SessionStore:      NewRedisSessionStore(client, cfg.Redis.KeyPrefix, log),
		db:                db,
		redis:             client,
	}, nil
}

// Ping checks both backends. It backs the gRPC readiness check.
func (s *Storages) Ping(ctx context.Context) error {
	var errs []error
	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases both connections.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
