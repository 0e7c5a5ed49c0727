// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package store provides the PostgreSQL persistence layer: connection
// management, schema migrations and repositories over the catalog and
// enrolment tables.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// poolIface abstracts pgxpool.Pool so repositories can be tested with
// pgxmock without a running database.
type poolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// Store owns a connection pool and hands out repositories bound to it.
type Store struct {
	pool poolIface
}

// Open connects to PostgreSQL and verifies the connection with a short
// exponential-backoff ping, so callers racing a database that is still
// starting up do not fail immediately.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("STORE_OPEN_FAILED").With("operation", "create pool").Wrap(err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(250*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("STORE_PING_FAILED").With("operation", "ping database").Wrap(err)
	}

	return &Store{pool: pool}, nil
}

// NewStore wraps an existing pool. Tests use this with pgxmock.
func NewStore(pool poolIface) *Store {
	return &Store{pool: pool}
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Catalog returns a repository over students, courses and course content.
func (s *Store) Catalog() *CatalogRepository {
	return NewCatalogRepository(s.pool)
}

// Enrolments returns a directory backed by the enrolments table.
func (s *Store) Enrolments() *EnrolmentRepository {
	return NewEnrolmentRepository(s.pool, s.Catalog())
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. Seeding uses this to treat already-present rows as success.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
