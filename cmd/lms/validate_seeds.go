// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewValidateSeedsCmd creates the validate-seeds subcommand.
func NewValidateSeedsCmd() *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "validate-seeds",
		Short: "Validate a seed dataset without touching the database",
		Long: `Parses and validates a seed dataset file. Without --file the embedded
reference dataset is checked. Does NOT require a database connection.
Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines to catch dataset errors early:
  lms validate-seeds --file seeds/students.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidateSeeds(cmd, seedFile)
		},
	}

	cmd.Flags().StringVar(&seedFile, "file", "", "seed dataset file (YAML)")

	return cmd
}

func runValidateSeeds(cmd *cobra.Command, path string) error {
	dataset, err := loadDataset(path)
	if err != nil {
		return err
	}

	slog.Info("seed dataset valid",
		"students", len(dataset.Students),
		"courses", len(dataset.Courses),
		"enrolments", len(dataset.Enrolments))
	cmd.Printf("Dataset valid: %d students, %d courses, %d enrolments\n",
		len(dataset.Students), len(dataset.Courses), len(dataset.Enrolments))
	return nil
}
