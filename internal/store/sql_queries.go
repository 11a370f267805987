package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-community-access/models"
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// accountColumns is the column list scanned by scanAccountRecord.
var accountColumns = []string{
	"a.id",
	"a.username",
	"a.email",
	"a.password_hash",
	"a.is_active",
	"a.is_superuser",
	"a.first_name",
	"a.last_name",
	"a.created_at",
	"p.account_id",
	"p.role",
	"p.must_change_password",
	"p.paternal_surname",
	"p.recovery_code",
	"p.recovery_code_expires_at",
}

func selectAccounts() sq.SelectBuilder {
	return psql.Select(accountColumns...).
		From("accounts a").
		LeftJoin("profiles p ON p.account_id = a.id")
}

func buildFindAccountByIDQuery(id int64) (string, []any, error) {
	return wrapBuild(selectAccounts().Where(sq.Eq{"a.id": id}).ToSql())
}

func buildFindAccountByUsernameQuery(username string) (string, []any, error) {
	return wrapBuild(selectAccounts().Where(sq.Eq{"a.username": username}).ToSql())
}

func buildFindAccountsByEmailQuery(email string) (string, []any, error) {
	return wrapBuild(selectAccounts().
		Where(sq.Expr("LOWER(a.email) = LOWER(?)", strings.TrimSpace(email))).
		OrderBy("a.id").
		ToSql())
}

func buildListActiveByRoleQuery(role models.Role) (string, []any, error) {
	query := selectAccounts().
		Where(sq.Eq{"a.is_active": true, "a.is_superuser": false}).
		Where(sq.NotEq{"a.email": ""}).
		OrderBy("a.first_name", "a.last_name", "a.email")

	if role != "" && role != models.RoleAll {
		query = query.Where(sq.Eq{"p.role": string(role)})
	}

	return wrapBuild(query.ToSql())
}

func buildSetRecoveryCodeQuery(accountID int64, code models.RecoveryCode) (string, []any, error) {
	return wrapBuild(psql.Update("profiles").
		Set("recovery_code", code.Code).
		Set("recovery_code_expires_at", code.ExpiresAt).
		Where(sq.Eq{"account_id": accountID}).
		ToSql())
}

func buildUpdatePasswordHashQuery(accountID int64, passwordHash string) (string, []any, error) {
	return wrapBuild(psql.Update("accounts").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": accountID}).
		ToSql())
}

func buildClearPasswordFlagsQuery(accountID int64) (string, []any, error) {
	return wrapBuild(psql.Update("profiles").
		Set("must_change_password", false).
		Set("recovery_code", nil).
		Set("recovery_code_expires_at", nil).
		Where(sq.Eq{"account_id": accountID}).
		ToSql())
}

func buildRequirePasswordChangeQuery(accountID int64) (string, []any, error) {
	return wrapBuild(psql.Update("profiles").
		Set("must_change_password", true).
		Where(sq.Eq{"account_id": accountID}).
		ToSql())
}

func buildSetActiveQuery(accountID int64, active bool) (string, []any, error) {
	return wrapBuild(psql.Update("accounts").
		Set("is_active", active).
		Where(sq.Eq{"id": accountID}).
		Where(sq.NotEq{"is_active": active}).
		ToSql())
}

func buildDeleteAccountQuery(accountID int64) (string, []any, error) {
	return wrapBuild(psql.Delete("accounts").Where(sq.Eq{"id": accountID}).ToSql())
}

func buildGetOrCreateTokenQuery(accountID int64, key string) (string, []any, error) {
	// the no-op update makes RETURNING yield the existing row on conflict
	return wrapBuild(psql.Insert("api_tokens").
		Columns("key", "account_id").
		Values(key, accountID).
		Suffix("ON CONFLICT (account_id) DO UPDATE SET account_id = EXCLUDED.account_id RETURNING key, account_id, created_at").
		ToSql())
}

func buildFindTokenOwnerQuery(key string) (string, []any, error) {
	return wrapBuild(psql.Select("account_id").From("api_tokens").Where(sq.Eq{"key": key}).ToSql())
}

func wrapBuild(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
