// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// migrateConfig holds configuration for the migrate command.
type migrateConfig struct {
	down  bool
	force int
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	mcfg := &migrateConfig{force: -1}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply all pending database migrations against the PostgreSQL database.

With --down the full schema is rolled back instead, dropping all tables
and data. With --force N the recorded version is set to N without running
migrations; use it only to recover a dirty schema after fixing the
database by hand.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, mcfg)
		},
	}

	cmd.Flags().BoolVar(&mcfg.down, "down", false, "roll back all migrations (destructive)")
	cmd.Flags().IntVar(&mcfg.force, "force", -1, "set migration version without running migrations")

	return cmd
}

func runMigrate(cmd *cobra.Command, mcfg *migrateConfig) error {
	if mcfg.down && mcfg.force >= 0 {
		return oops.Code("INVALID_FLAGS").Errorf("--down and --force are mutually exclusive")
	}

	databaseURL, err := cfg.RequireDatabaseURL()
	if err != nil {
		return err
	}

	migrator, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	switch {
	case mcfg.force >= 0:
		if err := migrator.Force(mcfg.force); err != nil {
			return err
		}
		cmd.Printf("Forced migration version to %d\n", mcfg.force)
	case mcfg.down:
		if err := migrator.Down(); err != nil {
			return err
		}
		cmd.Println("Schema rolled back")
	default:
		if err := migrator.Up(); err != nil {
			return err
		}
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		if dirty {
			cmd.Printf("Migrations applied, schema is DIRTY at version %d\n", version)
		} else {
			cmd.Printf("Migrations applied, schema at version %d\n", version)
		}
	}
	return nil
}
