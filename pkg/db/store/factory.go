package store

import (
	"fmt"

	config "github.com/sipi-it/slms/internal/config/server"
)

// NewFromConfig creates the DocumentStore selected by the metadata
// configuration. SQLite serves single-node deployments and tests;
// PostgreSQL serves production.
func NewFromConfig(cfg config.MetadataServerConfig) (DocumentStore, error) {
	switch cfg.Type {
	case "", "sqlite":
		return NewSQLiteStore(SQLiteConfig{
			Path: cfg.SQLite.Path,
		})
	case "postgres":
		return NewPostgresStore(PostgresConfig{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Postgres.MaxIdleConns,
		})
	default:
		return nil, fmt.Errorf("unsupported metadata store type %q", cfg.Type)
	}
}
