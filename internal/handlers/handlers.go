package handlers

import (
	"database/sql"

	"github.com/sajidhasan/ecomart-golang/internal/auth"
	"github.com/sajidhasan/ecomart-golang/internal/config"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB     *sql.DB
	Auth   *auth.TokenManager
	Config *config.Config
}

// Querier is the common interface for QueryRow, implemented by both
// *sql.DB and *sql.Tx. Helpers that must work in or out of a
// transaction take a Querier.
type Querier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Execer is the write-side counterpart of Querier.
type Execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}
