// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"context"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/myedspace/lms/internal/seed"
	"github.com/myedspace/lms/internal/store"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	file    string
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	scfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog and enrolments from a seed dataset",
		Long: `Applies pending migrations and inserts the dataset's students, courses
and enrolments. Without --file the embedded reference dataset is used.
This command is idempotent: rows that already exist are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, scfg)
		},
	}

	cmd.Flags().StringVar(&scfg.file, "file", "", "seed dataset file (YAML)")
	cmd.Flags().DurationVar(&scfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, scfg *seedConfig) error {
	dataset, err := loadDataset(scfg.file)
	if err != nil {
		return err
	}

	databaseURL, err := cfg.RequireDatabaseURL()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), scfg.timeout)
	defer cancel()

	cmd.Println("Running migrations...")
	migrator, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	if upErr := migrator.Up(); upErr != nil {
		_ = migrator.Close()
		return upErr
	}
	if err := migrator.Close(); err != nil {
		return err
	}

	cmd.Println("Connecting to database...")
	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := applyDataset(ctx, cmd, st, dataset); err != nil {
		return err
	}

	cmd.Println("Seed complete")
	return nil
}

func loadDataset(path string) (seed.Dataset, error) {
	if path == "" {
		return seed.Reference()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return seed.Dataset{}, oops.Code("SEED_READ_FAILED").With("path", path).Wrap(err)
	}
	return seed.Parse(data)
}

func applyDataset(ctx context.Context, cmd *cobra.Command, st *store.Store, dataset seed.Dataset) error {
	catalogRepo := st.Catalog()
	for _, s := range dataset.Students {
		err := catalogRepo.CreateStudent(ctx, s.Student())
		if store.IsUniqueViolation(err) {
			cmd.Printf("Student %s already exists, skipping\n", s.ID)
			continue
		}
		if err != nil {
			return err
		}
	}

	for _, c := range dataset.Courses {
		course, err := c.Course()
		if err != nil {
			return oops.Code("SEED_INVALID").With("course_id", c.ID).Wrap(err)
		}
		err = catalogRepo.CreateCourse(ctx, course)
		if store.IsUniqueViolation(err) {
			cmd.Printf("Course %s already exists, skipping\n", c.ID)
			continue
		}
		if err != nil {
			return err
		}
	}

	enrolmentRepo := st.Enrolments()
	for _, e := range dataset.Enrolments {
		student, err := catalogRepo.Student(ctx, e.StudentID)
		if err != nil {
			return err
		}
		course, err := catalogRepo.Course(ctx, e.CourseID)
		if err != nil {
			return err
		}
		if _, err := enrolmentRepo.Create(ctx, e.ID, student, course, e.StartsAt, e.EndsAt); err != nil {
			return err
		}
	}

	return nil
}
