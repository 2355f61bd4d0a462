package gormrepo

import (
	"nexus/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// constraintKind classifies a storage error by the integrity constraint it violated.
type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintNotNull
	constraintForeignKey
	constraintCheck
)

// PostgreSQL SQLSTATE codes of the integrity_constraint_violation class.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// classifyConstraint inspects GORM's translated sentinels first, then the raw
// driver errors (pgconn for PostgreSQL, go-sqlite3 for SQLite).
func classifyConstraint(err error) constraintKind {
	if err == nil {
		return constraintNone
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return constraintUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return constraintForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return constraintCheck
	}

	if pgErr, ok := errors.AsType[*pgconn.PgError](err); ok {
		switch pgErr.Code {
		case pgUniqueViolation:
			return constraintUnique
		case pgNotNullViolation:
			return constraintNotNull
		case pgForeignKeyViolation:
			return constraintForeignKey
		case pgCheckViolation:
			return constraintCheck
		}

		return constraintNone
	}

	if sqliteErr, ok := errors.AsType[sqlite3.Error](err); ok {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return constraintUnique
		case sqlite3.ErrConstraintNotNull:
			return constraintNotNull
		case sqlite3.ErrConstraintForeignKey:
			return constraintForeignKey
		case sqlite3.ErrConstraintCheck:
			return constraintCheck
		}
	}

	return constraintNone
}

func isForeignKeyConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintForeignKey
}

func isNotNullConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintNotNull
}

func isCheckConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintCheck
}
