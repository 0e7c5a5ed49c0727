// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package enrolment links students to courses for a bounded period and
// provides the directory that stores and queries those links.
package enrolment

import (
	"time"

	"github.com/myedspace/lms/internal/catalog"
)

// Enrolment entitles a student to a course between two instants. The end
// instant is the only mutable field; external systems correct it through
// Directory.UpdateEndDate, and every change takes effect immediately for
// subsequent decisions.
type Enrolment struct {
	ID       string
	Student  catalog.Student
	Course   *catalog.Course
	StartsAt time.Time
	EndsAt   time.Time
}

// ActiveAt reports whether the enrolment covers the given instant. The
// interval is closed: both the start and end instants count as active.
// An inverted interval (start after end) is never active.
func (e *Enrolment) ActiveAt(t time.Time) bool {
	return !t.Before(e.StartsAt) && !t.After(e.EndsAt)
}

// Clone returns a copy of the enrolment. The referenced student and course
// are shared; only the enrolment record itself is duplicated.
func (e *Enrolment) Clone() *Enrolment {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}
