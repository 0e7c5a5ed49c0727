// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/myedspace/lms/internal/config"
	"github.com/myedspace/lms/internal/gateway"
	"github.com/myedspace/lms/internal/lms"
	"github.com/myedspace/lms/internal/store"
)

// migrator wraps the store.Migrator methods commands use so tests can
// substitute a fake without a database connection.
type migrator interface {
	Up() error
	Down() error
	Version() (version uint, dirty bool, err error)
	Force(version int) error
	PendingMigrations() ([]uint, error)
	Close() error
}

// Injectable seams for command tests. Each has a production default;
// tests swap them for fixtures.
var (
	// openStore opens the backing store for a database URL.
	openStore = store.Open

	// newMigrator creates a schema migrator for a database URL.
	newMigrator = func(databaseURL string) (migrator, error) {
		return store.NewMigrator(databaseURL)
	}

	// newController builds the boundary controller used by data commands.
	// The returned func releases the underlying store.
	newController = func(ctx context.Context, cfg *config.Config) (*gateway.Controller, func(), error) {
		databaseURL, err := cfg.RequireDatabaseURL()
		if err != nil {
			return nil, nil, err
		}

		st, err := openStore(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}

		svc := lms.NewService(lms.ServiceConfig{
			Directory: st.Enrolments(),
			Logger:    slog.Default(),
		})
		return gateway.NewController(svc, st.Catalog()), st.Close, nil
	}
)
