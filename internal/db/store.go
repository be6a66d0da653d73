package db

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/david/prospect-tracker/internal/registry"
)

// Store is the Postgres implementation of the registry store interfaces.
type Store struct {
	pool *pgxpool.Pool
}

var _ registry.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
