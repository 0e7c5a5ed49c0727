// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package access decides whether a student may reach a piece of course
// content at a given instant.
//
// A decision is the composition of three predicates, evaluated as an
// ordered chain: enrolment activity, course scheduling, and the content
// item's own availability rule. The first failing check determines the
// denial reason; callers may match on the exact reason text.
package access

import (
	"time"

	"github.com/myedspace/lms/internal/catalog"
	"github.com/myedspace/lms/internal/enrolment"
)

// Decision reasons. These are fixed strings, part of the contract with
// boundary layers, not free-form error text.
const (
	ReasonGranted             = "Access granted"
	ReasonEnrolmentInactive   = "Student enrolment is not active"
	ReasonCourseNotStarted    = "Course has not started yet"
	ReasonContentNotFound     = "Content not found"
	ReasonContentNotAvailable = "Content is not yet available"
	ReasonNoActiveEnrolment   = "No active enrolment found"
)

// Decision is the immutable outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Granted returns an allowing decision.
func Granted() Decision {
	return Decision{Allowed: true, Reason: ReasonGranted}
}

// Denied returns a denying decision with the given reason.
func Denied(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanAccess evaluates the decision chain for a single content item.
// Precedence: enrolment inactive > course not started > content not found >
// content not yet available > granted. Evaluation short-circuits on the
// first failing check.
//
// The student parameter is part of the decision contract even though the
// current chain gates on the enrolment alone; the enrolment already binds
// the student and course together.
func CanAccess(_ catalog.Student, contentID string, course *catalog.Course, enr *enrolment.Enrolment, at time.Time) Decision {
	started := time.Now()

	decision := evaluate(contentID, course, enr, at)
	recordDecision(time.Since(started), decision)
	return decision
}

func evaluate(contentID string, course *catalog.Course, enr *enrolment.Enrolment, at time.Time) Decision {
	if !enr.ActiveAt(at) {
		return Denied(ReasonEnrolmentInactive)
	}
	if !course.HasStartedAt(at) {
		return Denied(ReasonCourseNotStarted)
	}
	content, ok := course.Content(contentID)
	if !ok {
		return Denied(ReasonContentNotFound)
	}
	if !content.AvailableAt(at, course.StartsAt) {
		return Denied(ReasonContentNotAvailable)
	}
	return Granted()
}

// AccessibleContent filters the course's content down to the items the
// student may reach at the given instant, preserving the course's content
// order. It is a filter, not a batch of decisions: items excluded here
// carry no individual denial reason.
func AccessibleContent(_ catalog.Student, course *catalog.Course, enr *enrolment.Enrolment, at time.Time) []catalog.ContentItem {
	accessible := []catalog.ContentItem{}
	if !enr.ActiveAt(at) || !course.HasStartedAt(at) {
		return accessible
	}
	for _, content := range course.AllContent() {
		if content.AvailableAt(at, course.StartsAt) {
			accessible = append(accessible, content)
		}
	}
	return accessible
}
