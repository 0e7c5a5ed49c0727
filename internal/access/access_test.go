// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package access_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myedspace/lms/internal/access"
	"github.com/myedspace/lms/internal/catalog"
	"github.com/myedspace/lms/internal/enrolment"
)

var (
	courseStart = time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	courseEnd   = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	lessonAt    = time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC)
	enrolStart  = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	enrolEnd    = time.Date(2025, 5, 30, 23, 59, 59, 0, time.UTC)

	emma = catalog.Student{ID: "1342", Name: "Emma"}
)

func biologyCourse() *catalog.Course {
	end := courseEnd
	course := catalog.NewCourse("5874", "A-Level Biology", courseStart, &end)
	course.AddContent(catalog.NewLesson("8001", "Cell Structure", lessonAt))
	course.AddContent(catalog.NewHomework("8002", "Label a Plant Cell"))
	course.AddContent(catalog.NewPrepMaterial("8003", "Biology Reading Guide"))
	return course
}

func emmaEnrolment(course *catalog.Course) *enrolment.Enrolment {
	return &enrolment.Enrolment{
		ID:       "enrol_emma",
		Student:  emma,
		Course:   course,
		StartsAt: enrolStart,
		EndsAt:   enrolEnd,
	}
}

func TestCanAccess_Chain(t *testing.T) {
	course := biologyCourse()
	enr := emmaEnrolment(course)

	tests := []struct {
		name      string
		contentID string
		at        time.Time
		allowed   bool
		reason    string
	}{
		{
			name:      "denied before enrolment starts",
			contentID: "8003",
			at:        enrolStart.Add(-time.Hour),
			allowed:   false,
			reason:    access.ReasonEnrolmentInactive,
		},
		{
			name:      "denied before course starts",
			contentID: "8003",
			at:        enrolStart,
			allowed:   false,
			reason:    access.ReasonCourseNotStarted,
		},
		{
			name:      "denied for unknown content",
			contentID: "9999",
			at:        courseStart,
			allowed:   false,
			reason:    access.ReasonContentNotFound,
		},
		{
			name:      "denied before lesson is scheduled",
			contentID: "8001",
			at:        lessonAt.Add(-time.Minute),
			allowed:   false,
			reason:    access.ReasonContentNotAvailable,
		},
		{
			name:      "lesson allowed from its scheduled instant",
			contentID: "8001",
			at:        lessonAt,
			allowed:   true,
			reason:    access.ReasonGranted,
		},
		{
			name:      "prep material allowed from course start",
			contentID: "8003",
			at:        courseStart,
			allowed:   true,
			reason:    access.ReasonGranted,
		},
		{
			name:      "homework allowed from course start",
			contentID: "8002",
			at:        courseStart,
			allowed:   true,
			reason:    access.ReasonGranted,
		},
		{
			name:      "denied after enrolment ends",
			contentID: "8002",
			at:        enrolEnd.Add(time.Second),
			allowed:   false,
			reason:    access.ReasonEnrolmentInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := access.CanAccess(emma, tt.contentID, course, enr, tt.at)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

// A scenario failing several checks must report the first in chain order.
func TestCanAccess_PrecedenceOnMultipleFailures(t *testing.T) {
	course := biologyCourse()
	enr := emmaEnrolment(course)

	t.Run("inactive enrolment beats course not started", func(t *testing.T) {
		// Before both the enrolment and the course start, for content
		// that does not even exist.
		d := access.CanAccess(emma, "9999", course, enr, enrolStart.Add(-time.Hour))
		assert.Equal(t, access.ReasonEnrolmentInactive, d.Reason)
	})

	t.Run("course not started beats content not found", func(t *testing.T) {
		d := access.CanAccess(emma, "9999", course, enr, enrolStart)
		assert.Equal(t, access.ReasonCourseNotStarted, d.Reason)
	})

	t.Run("content not found beats availability", func(t *testing.T) {
		// At course start the lesson is not yet available either, but an
		// unknown ID reports not-found first.
		d := access.CanAccess(emma, "9999", course, enr, courseStart)
		assert.Equal(t, access.ReasonContentNotFound, d.Reason)
	})
}

// Lesson access is gated by enrolment activity, not by the course still
// running: the course window is inspectable but not part of the chain.
func TestCanAccess_CourseEndDoesNotGate(t *testing.T) {
	end := courseStart.AddDate(0, 0, 3)
	course := catalog.NewCourse("c1", "Short Course", courseStart, &end)
	course.AddContent(catalog.NewHomework("h1", "Exercises"))
	enr := emmaEnrolment(course)

	at := end.AddDate(0, 0, 2) // course ended, enrolment still active
	require.True(t, course.HasEndedAt(at))

	d := access.CanAccess(emma, "h1", course, enr, at)
	assert.True(t, d.Allowed)
}

func TestAccessibleContent(t *testing.T) {
	course := biologyCourse()
	enr := emmaEnrolment(course)

	tests := []struct {
		name string
		at   time.Time
		ids  []string
	}{
		{"empty before enrolment", enrolStart.Add(-time.Hour), []string{}},
		{"empty before course start", enrolStart, []string{}},
		{"homework and prep at course start", courseStart, []string{"8002", "8003"}},
		{"all three once lesson is scheduled", lessonAt.Add(time.Minute), []string{"8001", "8002", "8003"}},
		{"empty after enrolment ends", enrolEnd.Add(time.Second), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := access.AccessibleContent(emma, course, enr, tt.at)
			ids := make([]string, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestAccessibleContent_Idempotent(t *testing.T) {
	course := biologyCourse()
	enr := emmaEnrolment(course)
	at := lessonAt.Add(time.Minute)

	first := access.AccessibleContent(emma, course, enr, at)
	second := access.AccessibleContent(emma, course, enr, at)
	assert.Equal(t, first, second)
}

// Availability is a non-decreasing step function of time: anything
// accessible at t stays accessible at any later instant within the
// enrolment window.
func TestAccessibleContent_MonotonicWhileActive(t *testing.T) {
	course := biologyCourse()
	enr := emmaEnrolment(course)

	instants := []time.Time{
		courseStart,
		courseStart.AddDate(0, 0, 1),
		lessonAt,
		lessonAt.Add(48 * time.Hour),
		enrolEnd,
	}

	var prev []string
	for _, at := range instants {
		var ids []string
		for _, item := range access.AccessibleContent(emma, course, enr, at) {
			ids = append(ids, item.ID)
		}
		assert.Subset(t, ids, prev, "content accessible at an earlier instant disappeared at %s", at)
		prev = ids
	}
}
