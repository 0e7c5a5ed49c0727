// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package main

import (
	"encoding/json"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/myedspace/lms/internal/gateway"
)

// NewEnrolCmd creates the enrol subcommand group.
func NewEnrolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrol",
		Short: "Manage student enrolments",
	}

	cmd.AddCommand(newEnrolCreateCmd())
	cmd.AddCommand(newEnrolSetEndCmd())

	return cmd
}

// enrolCreateConfig holds configuration for enrol create.
type enrolCreateConfig struct {
	enrolmentID string
	studentID   string
	courseID    string
	start       string
	end         string
}

func newEnrolCreateCmd() *cobra.Command {
	ccfg := &enrolCreateConfig{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Enrol a student on a course for a period",
		Long: `Creates an enrolment giving the student access to the course between
the start and end instants, both inclusive. Without --id an enrolment ID
is generated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnrolCreate(cmd, ccfg)
		},
	}

	cmd.Flags().StringVar(&ccfg.enrolmentID, "id", "", "enrolment ID (default: generated)")
	cmd.Flags().StringVar(&ccfg.studentID, "student", "", "student ID (required)")
	cmd.Flags().StringVar(&ccfg.courseID, "course", "", "course ID (required)")
	cmd.Flags().StringVar(&ccfg.start, "start", "", "enrolment start, RFC 3339 (required)")
	cmd.Flags().StringVar(&ccfg.end, "end", "", "enrolment end, RFC 3339 (required)")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runEnrolCreate(cmd *cobra.Command, ccfg *enrolCreateConfig) error {
	raw, err := json.Marshal(gateway.CreateEnrolmentRequest{
		EnrolmentID: ccfg.enrolmentID,
		StudentID:   ccfg.studentID,
		CourseID:    ccfg.courseID,
		StartDate:   ccfg.start,
		EndDate:     ccfg.end,
	})
	if err != nil {
		return oops.Code("MALFORMED_REQUEST").Wrap(err)
	}

	ctrl, closeFn, err := newController(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := ctrl.CreateEnrolment(cmd.Context(), raw)
	if writeErr := gateway.WriteResult(cmd.OutOrStdout(), resp, err); writeErr != nil {
		return writeErr
	}
	return err
}

func newEnrolSetEndCmd() *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "set-end ENROLMENT_ID",
		Short: "Change an enrolment's end date",
		Long: `Moves an existing enrolment's end date. Access checks after the new end
instant are denied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrolSetEnd(cmd, args[0], end)
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "new enrolment end, RFC 3339 (required)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runEnrolSetEnd(cmd *cobra.Command, enrolmentID, end string) error {
	raw, err := json.Marshal(gateway.UpdateEnrolmentRequest{EndDate: end})
	if err != nil {
		return oops.Code("MALFORMED_REQUEST").Wrap(err)
	}

	ctrl, closeFn, err := newController(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := ctrl.UpdateEnrolment(cmd.Context(), enrolmentID, raw)
	if writeErr := gateway.WriteResult(cmd.OutOrStdout(), resp, err); writeErr != nil {
		return writeErr
	}
	return err
}
