package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/models"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository] over the "accounts" and "profiles" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	*DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *accountRepository) FindByID(ctx context.Context, id int64) (models.AccountRecord, error) {
	query, args, err := buildFindAccountByIDQuery(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, "accountRepository.FindByID", query, args)
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (models.AccountRecord, error) {
	query, args, err := buildFindAccountByUsernameQuery(username)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, "accountRepository.FindByUsername", query, args)
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) ([]models.AccountRecord, error) {
	if email == "" {
		return nil, nil
	}

	query, args, err := buildFindAccountsByEmailQuery(email)
	if err != nil {
		return nil, err
	}

	return r.findMany(ctx, "accountRepository.FindByEmail", query, args)
}

func (r *accountRepository) ListActiveByRole(ctx context.Context, role models.Role) ([]models.AccountRecord, error) {
	query, args, err := buildListActiveByRoleQuery(role)
	if err != nil {
		return nil, err
	}

	return r.findMany(ctx, "accountRepository.ListActiveByRole", query, args)
}

func (r *accountRepository) SetRecoveryCode(ctx context.Context, accountID int64, code models.RecoveryCode) error {
	query, args, err := buildSetRecoveryCodeQuery(accountID, code)
	if err != nil {
		return err
	}

	return r.execExpectingRow(ctx, "accountRepository.SetRecoveryCode", accountID, ErrNoProfileWasFound, query, args)
}

// ResetPassword writes the password hash and clears the profile flags in
// one transaction. Accounts without a profile only get the new hash.
func (r *accountRepository) ResetPassword(ctx context.Context, accountID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	updateHash, hashArgs, err := buildUpdatePasswordHashQuery(accountID, passwordHash)
	if err != nil {
		return err
	}
	clearFlags, flagArgs, err := buildClearPasswordFlagsQuery(accountID)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.ResetPassword").
			Int64("account_id", accountID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, updateHash, hashArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.ResetPassword").
			Int64("account_id", accountID).
			Msg("failed to update password hash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNoAccountWasFound
	}

	if _, err = tx.ExecContext(ctx, clearFlags, flagArgs...); err != nil {
		log.Err(err).
			Str("func", "accountRepository.ResetPassword").
			Int64("account_id", accountID).
			Msg("failed to clear password flags")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "accountRepository.ResetPassword").
			Int64("account_id", accountID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *accountRepository) RequirePasswordChange(ctx context.Context, accountID int64) error {
	query, args, err := buildRequirePasswordChangeQuery(accountID)
	if err != nil {
		return err
	}

	return r.execExpectingRow(ctx, "accountRepository.RequirePasswordChange", accountID, ErrNoProfileWasFound, query, args)
}

// SetActive only touches rows whose flag differs, so the affected row count
// tells whether the state changed.
func (r *accountRepository) SetActive(ctx context.Context, accountID int64, active bool) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSetActiveQuery(accountID, active)
	if err != nil {
		return false, err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.SetActive").
			Int64("account_id", accountID).
			Bool("active", active).
			Msg("failed to update active flag")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

func (r *accountRepository) Delete(ctx context.Context, accountID int64) error {
	query, args, err := buildDeleteAccountQuery(accountID)
	if err != nil {
		return err
	}

	return r.execExpectingRow(ctx, "accountRepository.Delete", accountID, ErrNoAccountWasFound, query, args)
}

func (r *accountRepository) findOne(ctx context.Context, fn, query string, args []any) (models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	record, err := scanAccountRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAccountWasFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to load account")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (r *accountRepository) findMany(ctx context.Context, fn, query string, args []any) ([]models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.AccountRecord, 0, 8)
	for rows.Next() {
		record, scanErr := scanAccountRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan account row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating account rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *accountRepository) execExpectingRow(ctx context.Context, fn string, accountID int64, notFound error, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Int64("account_id", accountID).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
