package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/nexjob/nexjob-api/pkg/config"
)

// NewPostgres returns the elevated read-write PostgreSQL client.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	return open(cfg, cfg.User, cfg.Password)
}

// NewPublicPostgres returns the public read-only client used as the
// secondary settings source. It sees the same schema as the elevated client.
func NewPublicPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.PublicUser == "" {
		return nil, fmt.Errorf("public database user not configured")
	}
	return open(cfg, cfg.PublicUser, cfg.PublicPass)
}

func open(cfg config.DatabaseConfig, user, password string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		user,
		password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
