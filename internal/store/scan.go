package store

import (
	"database/sql"

	"github.com/MKhiriev/go-community-access/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccountRecord reads one row selected with accountColumns. A NULL
// profile key means the account has no profile.
func scanAccountRecord(row rowScanner) (models.AccountRecord, error) {
	var (
		account          models.Account
		profileAccountID sql.NullInt64
		role             sql.NullString
		mustChange       sql.NullBool
		paternalSurname  sql.NullString
		recoveryCode     sql.NullString
		recoveryExpires  sql.NullTime
	)

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.Active,
		&account.IsSuperuser,
		&account.FirstName,
		&account.LastName,
		&account.CreatedAt,
		&profileAccountID,
		&role,
		&mustChange,
		&paternalSurname,
		&recoveryCode,
		&recoveryExpires,
	)
	if err != nil {
		return nil, err
	}

	if !profileAccountID.Valid {
		return models.AccountWithoutProfile{Account: account}, nil
	}

	profile := models.Profile{
		AccountID:          profileAccountID.Int64,
		Role:               models.Role(role.String),
		MustChangePassword: mustChange.Bool,
		PaternalSurname:    paternalSurname.String,
	}
	if recoveryCode.Valid && recoveryExpires.Valid {
		profile.Recovery = &models.RecoveryCode{Code: recoveryCode.String, ExpiresAt: recoveryExpires.Time}
	}

	return models.AccountWithProfile{Account: account, Profile: profile}, nil
}
