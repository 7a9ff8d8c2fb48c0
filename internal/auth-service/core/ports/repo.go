package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the repositories use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type IDB interface {
	Querier() Querier
	IsAlive(ctx context.Context) error
	Close()
}
