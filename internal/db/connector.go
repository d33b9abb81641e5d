package db

import (
	"context"     // Request scoped database handles
	"errors"      // Sentinel errors
	"fmt"         // Error wrapping
	"sync"        // Guards connection establishment
	"sync/atomic" // Lock free fast path once connected
	"time"        // Slow query threshold

	_ "github.com/lib/pq"        // database/sql driver behind the postgres dialector
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL dialector for GORM
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger configuration
)

// ErrNotConfigured is returned when no connection string was provided
var ErrNotConfigured = errors.New("SQL_CONNECTION env var not set")

// ErrUnsupportedDriver is returned for an unknown DB_DRIVER value
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Option configures a Connector
type Option func(*Connector)

// WithAutoMigrate migrates the schema right after the first successful connection
func WithAutoMigrate() Option {
	return func(c *Connector) { c.autoMigrate = true }
}

// Connector lazily opens one shared connection pool and hands it out for the
// lifetime of the process. Callers that arrive while the pool is being opened
// wait for that attempt instead of opening their own.
type Connector struct {
	driver      string
	dsn         string
	autoMigrate bool
	open        func(driver, dsn string) (*gorm.DB, error)

	mu     sync.Mutex
	handle atomic.Pointer[gorm.DB]
}

// NewConnector returns a connector that has not connected yet
func NewConnector(driver, dsn string, opts ...Option) *Connector {
	c := &Connector{driver: driver, dsn: dsn, open: Open}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the shared handle bound to ctx, connecting on first use.
// A failed attempt is reported to every caller that waited on it; the next
// call tries again.
func (c *Connector) Get(ctx context.Context) (*gorm.DB, error) {
	if db := c.handle.Load(); db != nil {
		return db.WithContext(ctx), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if db := c.handle.Load(); db != nil {
		return db.WithContext(ctx), nil // Established while we waited
	}
	if c.dsn == "" {
		return nil, ErrNotConfigured
	}
	db, err := c.open(c.driver, c.dsn)
	if err != nil {
		return nil, err
	}
	if c.autoMigrate {
		if err := Migrate(db); err != nil {
			closeDB(db)
			return nil, err
		}
	}
	c.handle.Store(db)
	logrus.WithField("driver", c.driver).Info("Database connection established")
	return db.WithContext(ctx), nil
}

// Close releases the pool if one was opened
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	db := c.handle.Swap(nil)
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialector maps a driver name to its GORM dialector
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Open connects to the store, routing GORM's own logging through logrus
func Open(driver, dsn string) (*gorm.DB, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
