// Package xpgx wraps a pgx connection pool so that squirrel builders can be passed
// straight to it.
package xpgx

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
)

type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()

	Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error)
	Queryx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgx.Rows, error)
}

type pool struct {
	*pgxpool.Pool
}

// Connect opens a pool and pings it, retrying with exponential backoff up to retries
// times. The database is often still starting when the service comes up.
func Connect(ctx context.Context, dsn string, retries int) (Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	var p *pgxpool.Pool
	connect := func() error {
		p, err = pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err = p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 0
	notify := func(err error, wait time.Duration) {
		logger.Warnf(ctx, "postgres not ready, retrying in %s: %s", wait, err.Error())
	}

	err = backoff.RetryNotify(connect, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx), notify)
	if err != nil {
		return nil, fmt.Errorf("xpgx.Connect: %w", err)
	}

	return &pool{Pool: p}, nil
}

func (p *pool) Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}
	return p.Exec(ctx, sql, args...)
}

func (p *pool) Queryx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}
	return p.Query(ctx, sql, args...)
}

// Select runs the query and scans every row into a T by matching column names to the
// `db` tags of T.
func Select[T any](ctx context.Context, p Pool, sqlizer squirrel.Sqlizer) ([]*T, error) {
	rows, err := p.Queryx(ctx, sqlizer)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
}

// Get is Select for exactly one row; pgx.ErrNoRows when there is none.
func Get[T any](ctx context.Context, p Pool, sqlizer squirrel.Sqlizer) (*T, error) {
	rows, err := p.Queryx(ctx, sqlizer)
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
}
