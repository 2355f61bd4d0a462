// Package database opens the relational store behind the storage gateway and owns its schema.
package database

import (
	"context"
	"database/sql"
	"log/slog"
	"slices"
	"strings"
	"time"

	"nexus/config"
	"nexus/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	pingTimeout                 = 5 * time.Second
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the store selected by storage.driver and ties it to the fx lifecycle.
func New(params Params) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch params.Config.Storage.Driver {
	case config.DriverPostgres:
		db, err = openPostgres(params.Config, params.Logger)
	case config.DriverSQLite:
		db, err = OpenSQLite(params.Config.Storage.SQLitePath, params.Logger, params.Config.Env.Debug)
	default:
		err = errors.Errorf("unsupported storage driver %q", params.Config.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}
	if maxOpen := params.Config.Storage.MaxOpenConns; maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, pingTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrapf(err, "failed to ping %s", db.Dialector.Name())
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

func openPostgres(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	return db.Session(&gorm.Session{
		// Disable GORM's per-statement implicit transaction.
		// Multi-step operations run in explicit units of work via the transaction manager.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, config.DriverPostgres, cfg.Env.Debug),
	}), nil
}

// OpenSQLite opens a sqlite database with foreign keys enforced and immediate-lock transactions.
func OpenSQLite(dsn string, logger *slog.Logger, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(dsn)), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(logger, config.DriverSQLite, debug),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	return db, nil
}

// sqliteParams are the mattn DSN parameters every sqlite connection needs, each with the
// parameter names that already set it. Foreign keys are enforced per connection. Units of
// work take the write lock at BEGIN, so a concurrent writer waits for the busy timeout
// instead of failing when it upgrades a read lock.
var sqliteParams = []struct {
	value   string
	aliases []string
}{
	{value: "_foreign_keys=on", aliases: []string{"_foreign_keys=", "_fk="}},
	{value: "_txlock=immediate", aliases: []string{"_txlock="}},
	{value: "_busy_timeout=5000", aliases: []string{"_busy_timeout=", "_timeout="}},
}

// sqliteDSN adds every missing entry of sqliteParams to dsn, keeping values the caller set.
func sqliteDSN(dsn string) string {
	lower := strings.ToLower(dsn)
	if !strings.HasPrefix(lower, "file:") {
		dsn = "file:" + dsn
	}

	for _, param := range sqliteParams {
		if slices.ContainsFunc(param.aliases, func(alias string) bool { return strings.Contains(lower, alias) }) {
			continue
		}

		if strings.Contains(dsn, "?") {
			dsn += "&" + param.value
		} else {
			dsn += "?" + param.value
		}
	}

	return dsn
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("inUseConns", cur.InUse),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Units of work waiting for a connection", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Connection pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
