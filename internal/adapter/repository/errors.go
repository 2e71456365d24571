package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/eslsoft/atservices/internal/entity"
)

const (
	pgUndefinedTable  = "42P01"
	pgUniqueViolation = "23505"
)

// translateError maps driver errors onto the domain taxonomy. Unknown errors pass through.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUndefinedTable(err):
		return fmt.Errorf("%w: %v", entity.ErrSchemaUnavailable, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", entity.ErrIntegrityViolation, err)
	default:
		return err
	}
}

func isUndefinedTable(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrError && strings.Contains(sqliteErr.Error(), "no such table")
	}
	var pureErr *msqlite.Error
	if errors.As(err, &pureErr) {
		return pureErr.Code() == sqlite3lib.SQLITE_ERROR && strings.Contains(pureErr.Error(), "no such table")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUndefinedTable
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return false
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pureErr *msqlite.Error
	if errors.As(err, &pureErr) {
		switch pureErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
