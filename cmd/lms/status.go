// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// SchemaStatus holds the status report of the database.
type SchemaStatus struct {
	MigrationVersion  uint   `json:"migration_version"`
	Dirty             bool   `json:"dirty"`
	PendingMigrations []uint `json:"pending_migrations,omitempty"`
	Students          int64  `json:"students"`
	Courses           int64  `json:"courses"`
	Enrolments        int64  `json:"enrolments"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	scfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database schema and row counts",
		Long:  `Report the current migration version, pending migrations and catalog row counts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, scfg)
		},
	}

	cmd.Flags().BoolVar(&scfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, scfg *statusConfig) error {
	databaseURL, err := cfg.RequireDatabaseURL()
	if err != nil {
		return err
	}

	migrator, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	var status SchemaStatus
	status.MigrationVersion, status.Dirty, err = migrator.Version()
	if err != nil {
		return err
	}
	status.PendingMigrations, err = migrator.PendingMigrations()
	if err != nil {
		return err
	}

	st, err := openStore(cmd.Context(), databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	status.Students, status.Courses, status.Enrolments, err = st.Catalog().Counts(cmd.Context())
	if err != nil {
		return err
	}

	if scfg.jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(formatStatusTable(status))
	return nil
}

func formatStatusTable(status SchemaStatus) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "migration version:\t%d\n", status.MigrationVersion)
	fmt.Fprintf(w, "dirty:\t%t\n", status.Dirty)
	if len(status.PendingMigrations) > 0 {
		fmt.Fprintf(w, "pending migrations:\t%d\n", len(status.PendingMigrations))
	}
	fmt.Fprintf(w, "students:\t%d\n", status.Students)
	fmt.Fprintf(w, "courses:\t%d\n", status.Courses)
	fmt.Fprintf(w, "enrolments:\t%d\n", status.Enrolments)

	_ = w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
