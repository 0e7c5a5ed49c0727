// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package gateway translates boundary payloads into catalog values and
// formats decision results for callers. Everything the core refuses to do
// (timestamp parsing, missing-field validation, ID generation, error
// envelopes) lives here.
package gateway

import "time"

// Timestamps cross the boundary as RFC 3339 text and are compared as
// absolute instants once parsed.
const timestampFormat = time.RFC3339

// CheckAccessRequest asks whether a student may reach one content item.
type CheckAccessRequest struct {
	StudentID  string `json:"student_id"`
	CourseID   string `json:"course_id"`
	ContentID  string `json:"content_id"`
	AccessTime string `json:"access_time"`
}

// CheckAccessResponse reports a single access decision.
type CheckAccessResponse struct {
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
	ContentID string `json:"content_id"`
}

// AccessibleContentRequest asks for everything a student may reach in a
// course at a given instant.
type AccessibleContentRequest struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
	Time      string `json:"time"`
}

// ContentPayload is the boundary shape of a content item. Type carries the
// content kind label: "lesson", "homework" or "prep_material".
type ContentPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// AccessibleContentResponse lists accessible content in course order.
type AccessibleContentResponse struct {
	AccessibleContent []ContentPayload `json:"accessible_content"`
	TotalCount        int              `json:"total_count"`
	Timestamp         string           `json:"timestamp"`
	StudentID         string           `json:"student_id"`
	CourseID          string           `json:"course_id"`
}

// CreateEnrolmentRequest registers a student on a course for a period.
// EnrolmentID is optional; one is generated when omitted.
type CreateEnrolmentRequest struct {
	EnrolmentID string `json:"enrolment_id,omitempty"`
	StudentID   string `json:"student_id"`
	CourseID    string `json:"course_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// CreateEnrolmentResponse confirms a created enrolment.
type CreateEnrolmentResponse struct {
	Success     bool   `json:"success"`
	EnrolmentID string `json:"enrolment_id"`
	StudentID   string `json:"student_id"`
	CourseID    string `json:"course_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// UpdateEnrolmentRequest changes an enrolment's end date.
type UpdateEnrolmentRequest struct {
	EndDate string `json:"end_date"`
}

// UpdateEnrolmentResponse confirms an end-date change.
type UpdateEnrolmentResponse struct {
	Success     bool   `json:"success"`
	EnrolmentID string `json:"enrolment_id"`
	NewEndDate  string `json:"new_end_date"`
}
