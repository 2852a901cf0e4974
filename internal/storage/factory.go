package storage

import (
	"errors"
	"strings"

	"github.com/memento-care/memento/internal/storage/postgres"
	"github.com/memento-care/memento/internal/storage/sqlite"
)

// NewSQLiteStore creates a SQLite-backed provider.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a PostgreSQL-backed provider.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// IsPostgresConnString reports whether the config value looks like a
// PostgreSQL connection URI.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an inline password. Such strings are rejected; credentials belong
// in the OS keyring, environment, or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return errors.Is(err, postgres.ErrEmbeddedCredentials)
}
