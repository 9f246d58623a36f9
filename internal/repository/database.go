package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type database struct {
	pool  querier
	close func()
}

func newDb(ctx context.Context, connString string) (*database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &database{
		pool:  pool,
		close: pool.Close,
	}, nil
}

func (db *database) UserExists(ctx context.Context, username string) (bool, error) {
	query := "select exists(select 1 from users where username = @username)"
	args := pgx.NamedArgs{
		"username": username,
	}

	var exists bool
	if err := db.pool.QueryRow(ctx, query, args).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (db *database) Close() {
	if db.close != nil {
		db.close()
	}
}
