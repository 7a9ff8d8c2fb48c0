package db

import (
	"context"
	"fmt"
	"time"

	"driver-auth/internal/auth-service/core/ports"
	"driver-auth/internal/config"
	"driver-auth/internal/mylogger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectRetries = 5

type DB struct {
	cfg   *config.DBconfig
	mylog mylogger.Logger
	pool  *pgxpool.Pool
}

var _ ports.IDB = (*DB)(nil)

// Start opens the connection pool, retrying with a linear backoff.
// The pool holds at most cfg.PoolSize connections; callers beyond that wait
// in Acquire until one frees up or their context is done.
func Start(ctx context.Context, dbCfg *config.DBconfig, mylog mylogger.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(dbCfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = int32(dbCfg.PoolSize)

	d := &DB{
		cfg:   dbCfg,
		mylog: mylog,
	}

	var lastErr error
	for i := 0; i < connectRetries; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				d.pool = pool
				mylog.Info("Successfully connected to the database", "max_conns", poolCfg.MaxConns)
				return d, nil
			}
			pool.Close()
		}

		lastErr = err
		mylog.Error(fmt.Sprintf("DB connection attempt %d failed", i+1), err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second * time.Duration(i+1)):
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d attempts: %w", connectRetries, lastErr)
}

func (d *DB) Querier() ports.Querier {
	return d.pool
}

// IsAlive pings the DB to verify it's responsive
func (d *DB) IsAlive(ctx context.Context) error {
	if d.pool == nil {
		return fmt.Errorf("DB is not initialized")
	}
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Close waits for acquired connections to be released, then closes the pool.
func (d *DB) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}
