// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package enrolment

import (
	"context"
	"errors"
	"time"

	"github.com/myedspace/lms/internal/catalog"
)

// ErrNotFound indicates the directory has no enrolment for the given key.
var ErrNotFound = errors.New("enrolment not found")

// Directory stores enrolments keyed by ID and answers activity queries.
//
// IDs are caller-supplied; creating with an ID that already exists silently
// replaces the prior entry. When several enrolments match the same student
// and course with overlapping windows, FindActive returns the first one
// created. Both behaviours mirror the upstream enrolment system and are
// deliberate, not validated uniqueness.
type Directory interface {
	// Create stores and returns a new enrolment keyed by id.
	Create(ctx context.Context, id string, student catalog.Student, course *catalog.Course, startsAt, endsAt time.Time) (*Enrolment, error)

	// Get retrieves an enrolment by exact ID.
	// Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Enrolment, error)

	// FindActive returns the first stored enrolment, in creation order,
	// matching the student and course and active at the given instant.
	// Returns ErrNotFound when no enrolment qualifies.
	FindActive(ctx context.Context, student catalog.Student, course *catalog.Course, at time.Time) (*Enrolment, error)

	// UpdateEndDate changes the end instant of the enrolment with the given
	// ID. The new end is not validated against the start. Returns
	// ErrNotFound if the ID is unknown.
	UpdateEndDate(ctx context.Context, id string, newEnd time.Time) error

	// ListByStudent returns all enrolments for the student in creation
	// order.
	ListByStudent(ctx context.Context, student catalog.Student) ([]*Enrolment, error)
}
