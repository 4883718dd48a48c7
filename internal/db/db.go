package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"crew-service/internal/config"
	"crew-service/internal/model"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite"
)

// Models lists the schema in dependency order.
var Models = []interface{}{
	(*model.Country)(nil),
	(*model.Expedition)(nil),
	(*model.Crew)(nil),
	(*model.CrewExpedition)(nil),
}

// New opens the configured database and pings it.
func New(cfg config.DatabaseConfig) (*bun.DB, error) {
	var (
		db  *bun.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		db, err = NewSQLite(cfg.Path)
	default:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			sslMode,
		)
		db, err = NewWithDSN(dsn)
		if err == nil {
			configurePool(db, cfg)
		}
	}
	if err != nil {
		return nil, err
	}

	slog.Info("database connected successfully", "driver", cfg.Driver)
	return db, nil
}

// NewWithDSN connects to postgres with a custom DSN (useful for testing).
func NewWithDSN(dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return register(db)
}

// NewSQLite opens a sqlite database file, creating its directory when needed.
// ":memory:" gives a private in-memory database.
func NewSQLite(path string) (*bun.DB, error) {
	dsn := "file::memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = "file:" + path + "?_pragma=foreign_keys(1)"
	}

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// sqlite serialises writers; one connection also keeps an in-memory
	// database alive for the lifetime of the pool.
	sqldb.SetMaxOpenConns(1)

	return register(bun.NewDB(sqldb, sqlitedialect.New()))
}

func register(db *bun.DB) (*bun.DB, error) {
	// m2m relations resolve through the join model
	db.RegisterModel((*model.CrewExpedition)(nil))

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return db, nil
}

func configurePool(db *bun.DB, cfg config.DatabaseConfig) {
	sqlDB := db.DB

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxIdleConns(maxIdle)

	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = 300
	}
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	connMaxIdleTime := cfg.ConnMaxIdleTime
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 60
	}
	sqlDB.SetConnMaxIdleTime(time.Duration(connMaxIdleTime) * time.Second)

	slog.Info("database pool configured",
		"max_open_conns", maxOpen,
		"max_idle_conns", maxIdle,
		"conn_max_lifetime_seconds", connMaxLifetime,
		"conn_max_idle_time_seconds", connMaxIdleTime,
	)
}

func Close(db *bun.DB) {
	if db != nil {
		db.Close()
	}
}

// RunMigrations creates the tables for models that do not exist yet.
func RunMigrations(ctx context.Context, db bun.IDB, models ...interface{}) error {
	for _, m := range models {
		_, err := db.NewCreateTable().
			Model(m).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model: %w", err)
		}
	}
	slog.Info("database migrations completed successfully")
	return nil
}
