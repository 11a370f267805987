package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/jackc/pgerrcode"
)

// tokenRepository is the PostgreSQL-backed implementation of [TokenRepository].
type tokenRepository struct {
	*DB
	logger *logger.Logger
}

// NewTokenRepository constructs a [TokenRepository] backed by db.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		DB:     db,
		logger: logger,
	}
}

// GetOrCreate inserts candidateKey for the account or returns the token it
// already has. The upsert makes concurrent first logins converge on one row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the key → [ErrTokenKeyCollision].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *tokenRepository) GetOrCreate(ctx context.Context, accountID int64, candidateKey string) (models.APIToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetOrCreateTokenQuery(accountID, candidateKey)
	if err != nil {
		return models.APIToken{}, err
	}

	var token models.APIToken
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&token.Key, &token.AccountID, &token.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "tokenRepository.GetOrCreate").Int64("account_id", accountID).Msg("failed to get or create token")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.APIToken{}, ErrTokenKeyCollision
		default:
			return models.APIToken{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return token, nil
}

func (r *tokenRepository) FindAccountID(ctx context.Context, key string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindTokenOwnerQuery(key)
	if err != nil {
		return 0, err
	}

	var accountID int64
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoTokenWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "tokenRepository.FindAccountID").Msg("failed to resolve token")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return accountID, nil
}
