package db

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sportsbook/internal/config"
)

// ErrNotConnected is returned by lifecycle methods invoked before Open
// succeeded. Readiness checks rely on it: a database that was never opened
// must not report healthy.
var ErrNotConnected = errors.New("database is not connected")

// DB pairs the gorm handle with the underlying pool so callers can manage
// the connection lifecycle without reaching through gorm.
type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// Open connects to Postgres and applies the pool limits from configuration.
// Gorm's own query logging is silenced; the services log through zap.
func Open(cfg config.DBConfig) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	pool, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &DB{Gorm: gdb, SQL: pool}, nil
}

// Close releases the pool. Closing a DB that was never opened is a no-op.
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

// Ping reports whether the server is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.SQL == nil {
		return ErrNotConnected
	}
	return d.SQL.PingContext(ctx)
}

// SetTimezone pins the session timezone so timestamp scans are stable
// regardless of the server default.
func (d *DB) SetTimezone(ctx context.Context, tz string) error {
	if tz == "" {
		return nil
	}
	if d == nil || d.SQL == nil {
		return ErrNotConnected
	}
	_, err := d.SQL.ExecContext(ctx, "SET TIME ZONE '"+tz+"'")
	return err
}
