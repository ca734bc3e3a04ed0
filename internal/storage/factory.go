package storage

import (
	"github.com/amarling/daybook/internal/storage/postgres"
	"github.com/amarling/daybook/internal/storage/sqlite"
)

// NewSQLiteStore creates a file-backed sqlite Provider.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a Provider backed by a PostgreSQL database.
func NewPostgresStore(connStr string) Provider {
	return postgres.NewStore(connStr)
}

// HasEmbeddedCredentials reports whether a postgres connection string embeds
// a password.
func HasEmbeddedCredentials(connStr string) bool {
	return postgres.HasEmbeddedCredentials(connStr)
}
