package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rmenoli/finance-track-webapp-sub000/config"
)

const (
	connAttempts = 10
	connTimeout  = time.Second
)

// NewClient connects to Postgres with a few retries and applies pending
// migrations before returning the pool.
func NewClient(cfg *config.Config, log *logrus.Logger) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	for attempt := connAttempts; attempt > 0; attempt-- {
		db, err = sqlx.Connect("postgres", cfg.Postgres.URL)
		if err == nil {
			break
		}
		log.Infof("postgres not ready, %d attempts left: %v", attempt-1, err)
		time.Sleep(connTimeout)
	}
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second)

	if err := runMigrations(db, cfg.Postgres.MigrationDir); err != nil {
		return nil, err
	}
	log.Info("postgres connected and migrated")

	return db, nil
}

func runMigrations(db *sqlx.DB, dir string) error {
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration setup: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
