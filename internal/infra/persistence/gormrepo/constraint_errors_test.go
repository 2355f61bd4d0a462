package gormrepo

import (
	"testing"

	"nexus/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want constraintKind
	}{
		{name: "nil", err: nil, want: constraintNone},
		{name: "plain error", err: errors.New("connection reset"), want: constraintNone},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: constraintUnique},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: constraintForeignKey},
		{name: "gorm check", err: gorm.ErrCheckConstraintViolated, want: constraintCheck},
		{name: "wrapped gorm duplicated key", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), want: constraintUnique},
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505"}, want: constraintUnique},
		{name: "postgres not null", err: &pgconn.PgError{Code: "23502"}, want: constraintNotNull},
		{name: "postgres foreign key", err: &pgconn.PgError{Code: "23503"}, want: constraintForeignKey},
		{name: "postgres check", err: &pgconn.PgError{Code: "23514"}, want: constraintCheck},
		{name: "postgres syntax error", err: &pgconn.PgError{Code: "42601"}, want: constraintNone},
		{name: "wrapped postgres unique", err: errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert"), want: constraintUnique},
		{
			name: "sqlite unique",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			want: constraintUnique,
		},
		{
			name: "sqlite primary key",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey},
			want: constraintUnique,
		},
		{
			name: "sqlite not null",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull},
			want: constraintNotNull,
		},
		{
			name: "sqlite foreign key",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey},
			want: constraintForeignKey,
		},
		{
			name: "sqlite check",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck},
			want: constraintCheck,
		},
		{
			name: "sqlite busy",
			err:  sqlite3.Error{Code: sqlite3.ErrBusy},
			want: constraintNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyConstraint(tt.err))
		})
	}
}
