package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"portfolioAPI/internal/config"
)

type DB struct {
	*sqlx.DB
	log *zap.Logger
}

// MigrationURL is the postgres:// form of cfg that golang-migrate expects.
func MigrationURL(cfg config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DbUSER, cfg.DbPASSWORD),
		Host:     net.JoinHostPort(cfg.DbHOST, cfg.DbPORT),
		Path:     "/" + cfg.DbNAME,
		RawQuery: url.Values{"sslmode": {cfg.DbSSLMODE}}.Encode(),
	}
	return u.String()
}

// DSN builds the lib/pq connection string for cfg.
func DSN(cfg config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

// ConnectDB opens the pool, applies pending migrations when the directory exists and
// checks the connection.
func ConnectDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*DB, error) {
	log.Info("connecting to database",
		zap.String("host", cfg.DB.DbHOST),
		zap.String("dbname", cfg.DB.DbNAME))

	db, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	conn := &DB{DB: db, log: log}

	if err := conn.RunMigrations(cfg.DB); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			db.Close()
			return nil, err
		}
		log.Warn("migrations directory not found, skipping", zap.String("path", cfg.DB.MigrationsPath))
	}

	if err := conn.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check: %w", err)
	}

	log.Info("connected to PostgreSQL")
	return conn, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations applies every pending migration in cfg.MigrationsPath. A database
// left dirty by a failed run is forced back to its last version first.
func (db *DB) RunMigrations(cfg config.DB) error {
	dir := cfg.MigrationsPath
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("migrations directory %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	m.Log = migrateLogger{db.log.Sugar()}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		db.log.Warn("could not read migration version", zap.Error(err))
	}
	if dirty {
		db.log.Warn("database is dirty, forcing version", zap.Uint("version", version))
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("force migration version %d: %w", version, err)
		}
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			db.log.Info("schema is up to date", zap.Uint("version", version))
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, _, _ = m.Version()
	db.log.Info("migrations applied", zap.Uint("version", version))
	return nil
}

// migrateLogger routes golang-migrate output to zap.
type migrateLogger struct {
	log *zap.SugaredLogger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Debugf(strings.TrimSuffix(format, "\n"), v...)
}

func (l migrateLogger) Verbose() bool {
	return false
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return errors.New("database connection is not initialized")
	}

	return db.PingContext(ctx)
}
