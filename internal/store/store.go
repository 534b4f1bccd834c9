// Package store is the read/write adapter over the platform database. It
// owns no authorization logic; the auth engine consumes it through typed
// lookups and treats every error as a fail-closed denial.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/roomverse/platform/internal/db"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store executes typed queries against the platform database.
type Store struct {
	db db.DB
}

// New creates a Store over the given database handle.
func New(database db.DB) *Store {
	return &Store{db: database}
}

func notFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
