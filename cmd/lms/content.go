// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"encoding/json"
	"time"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/myedspace/lms/internal/gateway"
)

// contentConfig holds configuration for the content command.
type contentConfig struct {
	studentID string
	courseID  string
	at        string
	match     string
}

// NewContentCmd creates the content subcommand.
func NewContentCmd() *cobra.Command {
	ccfg := &contentConfig{}

	cmd := &cobra.Command{
		Use:   "content",
		Short: "List the content a student can access in a course",
		Long: `Lists the course content the student may open at a given instant, in
course order. --match filters items by title glob, e.g. --match "Cell *".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runContent(cmd, ccfg)
		},
	}

	cmd.Flags().StringVar(&ccfg.studentID, "student", "", "student ID (required)")
	cmd.Flags().StringVar(&ccfg.courseID, "course", "", "course ID (required)")
	cmd.Flags().StringVar(&ccfg.at, "at", "", "access time, RFC 3339 (default: now)")
	cmd.Flags().StringVar(&ccfg.match, "match", "", "filter items by title glob")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("course")

	return cmd
}

func runContent(cmd *cobra.Command, ccfg *contentConfig) error {
	at := ccfg.at
	if at == "" {
		at = time.Now().UTC().Format(time.RFC3339)
	}

	var matcher glob.Glob
	if ccfg.match != "" {
		var err error
		matcher, err = glob.Compile(ccfg.match)
		if err != nil {
			return oops.Code("INVALID_GLOB").With("pattern", ccfg.match).Wrap(err)
		}
	}

	raw, err := json.Marshal(gateway.AccessibleContentRequest{
		StudentID: ccfg.studentID,
		CourseID:  ccfg.courseID,
		Time:      at,
	})
	if err != nil {
		return oops.Code("MALFORMED_REQUEST").Wrap(err)
	}

	ctrl, closeFn, err := newController(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := ctrl.AccessibleContent(cmd.Context(), raw)
	if err == nil && matcher != nil {
		filtered := make([]gateway.ContentPayload, 0, len(resp.AccessibleContent))
		for _, item := range resp.AccessibleContent {
			if matcher.Match(item.Title) {
				filtered = append(filtered, item)
			}
		}
		resp.AccessibleContent = filtered
		resp.TotalCount = len(filtered)
	}

	if writeErr := gateway.WriteResult(cmd.OutOrStdout(), resp, err); writeErr != nil {
		return writeErr
	}
	return err
}
