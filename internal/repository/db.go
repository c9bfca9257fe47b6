package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	memoryDSN = "file::memory:"
)

type Config struct {
	Driver           string
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ConfigFrom copies the database section of the application config.
func ConfigFrom(c common.DatabaseConfig) Config {
	return Config{
		Driver:           c.Driver,
		DSN:              c.DSN,
		MaxConns:         c.MaxConns,
		MinConns:         c.MinConns,
		MaxConnLifetime:  c.MaxConnLifetime,
		MaxConnIdleTime:  c.MaxConnIdleTime,
		DialTimeout:      c.DialTimeout,
		StatementTimeout: c.StatementTimeout,
	}
}

// Store is an open database handle wrapped for Ent's SQL builders.
type Store struct {
	Driver  *entsql.Driver
	Pool    *pgxpool.Pool // nil for sqlite
	Dialect string
	Host    string // for error reporting
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.Driver.DB()
}

// Open connects to the configured store and returns it wrapped for Ent.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return openSQLite(ctx, cfg.DSN, logger)
	case DriverPostgres, "":
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, common.NewAppError(common.CodeConfigError, fmt.Sprintf("unknown db driver %q", cfg.Driver), common.ErrInvalidInput)
	}
}

// OpenInMemory opens a private in-memory SQLite store.
func OpenInMemory(ctx context.Context, logger *slog.Logger) (*Store, error) {
	return openSQLite(ctx, memoryDSN, logger)
}

// openPostgres creates a pgx pool, wraps it for Ent, and returns both.
func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database dsn", "error", err)
		return nil, common.NewAppError(common.CodeConfigError, "parse db url", err)
	}
	host := net.JoinHostPort(pc.ConnConfig.Host, strconv.Itoa(int(pc.ConnConfig.Port)))
	logger.Info("connecting to database", "driver", DriverPostgres, "host", host, "database", pc.ConnConfig.Database)

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-tracker"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}

	dialCtx, cancel := common.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "host", host, "error", err)
		return nil, common.PersistenceError(host, "database", "connect", err)
	}

	// Wrap pool as *sql.DB for Ent
	db := stdlib.OpenDBFromPool(pool)
	drv := entsql.OpenDB(dialect.Postgres, db)

	logger.Info("successfully connected to database", "host", host)
	return &Store{Driver: drv, Pool: pool, Dialect: dialect.Postgres, Host: host}, nil
}

func openSQLite(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if dsn == "" {
		dsn = memoryDSN
	}
	dsn = withForeignKeys(dsn)
	logger.Info("opening database", "driver", DriverSQLite, "dsn", dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, common.PersistenceError(dsn, "database", "open", err)
	}
	// One connection: an in-memory database is private to its connection,
	// and a file database then never sees concurrent writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, common.PersistenceError(dsn, "database", "open", err)
	}

	return &Store{
		Driver:  entsql.OpenDB(dialect.SQLite, db),
		Dialect: dialect.SQLite,
		Host:    "sqlite:" + dsn,
	}, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Close closes the database connections gracefully
func Close(store *Store, logger *slog.Logger) {
	if store == nil {
		return
	}
	logger.Info("closing database connections")
	if err := store.Driver.Close(); err != nil {
		logger.Error("failed to close database driver", "error", err)
	}
	if store.Pool != nil {
		store.Pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the store to catch DSN issues early.
func HealthCheck(ctx context.Context, store *Store, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database", "host", store.Host)
	ctx, cancel := common.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	if store.Pool != nil {
		err = store.Pool.Ping(ctx)
	} else {
		err = store.DB().PingContext(ctx)
	}
	if err != nil {
		logger.Error("database ping failed", "host", store.Host, "error", err)
		return common.PersistenceError(store.Host, "database", "ping", err)
	}
	logger.Debug("database ping successful")
	return nil
}
