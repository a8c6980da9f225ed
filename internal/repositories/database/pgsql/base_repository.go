package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides the shared connection pool for all repositories.
// The ledger surface is read-only, so no transaction helpers are needed.
type BaseRepository struct {
	Pool *pgxpool.Pool
}
