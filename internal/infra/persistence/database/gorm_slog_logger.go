package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nexus/internal/errors"
	logs "nexus/internal/infra/log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowStatementThreshold = 200 * time.Millisecond

// statementLogger writes gorm's statement trace through the operation-scoped slog logger,
// so every statement carries the operation id of the command that issued it.
//
// Constraint violations are expected outcomes here: repositories turn them into domain
// errors (duplicate tax id, insufficient stock, ...) and the service logs the result.
// They are traced at debug level; only unexplained failures are errors.
type statementLogger struct {
	base    *slog.Logger
	dialect string
	level   logger.LogLevel
}

// newGormSlogLogger routes gorm statement logs to slog. Debug mode traces every statement.
func newGormSlogLogger(base *slog.Logger, dialect string, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	return &statementLogger{base: base, dialect: dialect, level: level}
}

func (l *statementLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *statementLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *statementLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *statementLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *statementLogger) message(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.base == nil || l.level < min {
		return
	}

	l.log(ctx).LogAttrs(ctx, level, "Store message", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *statementLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.base == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return
	case err != nil && constraintName(err) != "":
		l.trace(ctx, slog.LevelDebug, "Statement rejected by constraint", sqlAndRowsFn, elapsed,
			slog.String("constraint", constraintName(err)))
	case err != nil && l.level >= logger.Error:
		l.trace(ctx, slog.LevelError, "Statement failed", sqlAndRowsFn, elapsed, slog.String("error", err.Error()))
	case elapsed > slowStatementThreshold && l.level >= logger.Warn:
		l.trace(ctx, slog.LevelWarn, "Slow statement", sqlAndRowsFn, elapsed,
			slog.Duration("slowThreshold", slowStatementThreshold))
	case l.level >= logger.Info:
		l.trace(ctx, slog.LevelInfo, "Statement executed", sqlAndRowsFn, elapsed)
	}
}

func (l *statementLogger) trace(ctx context.Context, level slog.Level, msg string, sqlAndRowsFn func() (string, int64), elapsed time.Duration, extra ...slog.Attr) {
	log := l.log(ctx)
	if !log.Enabled(ctx, level) {
		return
	}

	sql, rows := sqlAndRowsFn()
	attrs := append([]slog.Attr{
		slog.String("dialect", l.dialect),
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, extra...)

	log.LogAttrs(ctx, level, msg, attrs...)
}

func (l *statementLogger) log(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.base
	}

	return logs.FromContext(ctx, l.base)
}

// constraintName names the kind of integrity constraint err violates, or "" for any other error.
func constraintName(err error) string {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return "unique"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return "foreign_key"
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return "check"
	}

	if pgErr, ok := errors.AsType[*pgconn.PgError](err); ok {
		return pgConstraintNames[pgErr.Code]
	}

	if sqliteErr, ok := errors.AsType[sqlite3.Error](err); ok && sqliteErr.Code == sqlite3.ErrConstraint {
		if name, ok := sqliteConstraintNames[sqliteErr.ExtendedCode]; ok {
			return name
		}

		return "constraint"
	}

	return ""
}

var pgConstraintNames = map[string]string{
	"23505": "unique",
	"23502": "not_null",
	"23503": "foreign_key",
	"23514": "check",
}

var sqliteConstraintNames = map[sqlite3.ErrNoExtended]string{
	sqlite3.ErrConstraintUnique:     "unique",
	sqlite3.ErrConstraintPrimaryKey: "unique",
	sqlite3.ErrConstraintNotNull:    "not_null",
	sqlite3.ErrConstraintForeignKey: "foreign_key",
	sqlite3.ErrConstraintCheck:      "check",
}
