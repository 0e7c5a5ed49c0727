// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"encoding/json"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/myedspace/lms/internal/gateway"
)

// checkConfig holds configuration for the check command.
type checkConfig struct {
	studentID string
	courseID  string
	contentID string
	at        string
}

// NewCheckCmd creates the check subcommand.
func NewCheckCmd() *cobra.Command {
	ccfg := &checkConfig{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a student may access a content item",
		Long: `Evaluates the access rules for one student, course and content item at a
given instant and prints the decision with its reason. Denials are normal
output, not errors.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, ccfg)
		},
	}

	cmd.Flags().StringVar(&ccfg.studentID, "student", "", "student ID (required)")
	cmd.Flags().StringVar(&ccfg.courseID, "course", "", "course ID (required)")
	cmd.Flags().StringVar(&ccfg.contentID, "content", "", "content ID (required)")
	cmd.Flags().StringVar(&ccfg.at, "at", "", "access time, RFC 3339 (default: now)")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func runCheck(cmd *cobra.Command, ccfg *checkConfig) error {
	at := ccfg.at
	if at == "" {
		at = time.Now().UTC().Format(time.RFC3339)
	}

	raw, err := json.Marshal(gateway.CheckAccessRequest{
		StudentID:  ccfg.studentID,
		CourseID:   ccfg.courseID,
		ContentID:  ccfg.contentID,
		AccessTime: at,
	})
	if err != nil {
		return oops.Code("MALFORMED_REQUEST").Wrap(err)
	}

	ctrl, closeFn, err := newController(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := ctrl.CheckAccess(cmd.Context(), raw)
	if writeErr := gateway.WriteResult(cmd.OutOrStdout(), resp, err); writeErr != nil {
		return writeErr
	}
	return err
}
