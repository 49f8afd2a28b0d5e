package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// ErrDirtySchema means an earlier migration failed halfway and the schema
// needs a manual fix before anything else is applied.
var ErrDirtySchema = errors.New("schema is dirty")

// Migrations returns the embedded schema migrations as a migrate source.
func Migrations() (source.Driver, error) {
	return iofs.New(migrationFiles, "migrations")
}

// Migrator applies the embedded schema to one database.
type Migrator struct {
	conn   *sql.DB
	m      *migrate.Migrate
	logger *zap.Logger
}

func NewMigrator(dsn string, logger *zap.Logger) (*Migrator, error) {
	conn, err := openDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}

	src, err := Migrations()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	target, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migration target: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", target)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrator: %w", err)
	}

	return &Migrator{conn: conn, m: m, logger: logger}, nil
}

// Version reports the applied schema version. Zero means nothing has been
// applied yet.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Up applies every pending migration. A dirty schema is left alone.
func (mg *Migrator) Up() error {
	from, dirty, err := mg.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("version %d: %w", from, ErrDirtySchema)
	}

	err = mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("schema up to date", zap.Uint("version", from))
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply migrations from version %d: %w", from, err)
	}

	to, _, err := mg.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	mg.logger.Info("schema migrated", zap.Uint("from", from), zap.Uint("to", to))
	return nil
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr, mg.conn.Close())
}

// RunMigrations brings the schema at dsn up to the latest embedded version.
func RunMigrations(dsn string, logger *zap.Logger) (err error) {
	mg, err := NewMigrator(dsn, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, mg.Close())
	}()
	return mg.Up()
}
