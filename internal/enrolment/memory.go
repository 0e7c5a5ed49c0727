// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package enrolment

import (
	"context"
	"sync"
	"time"

	"github.com/myedspace/lms/internal/catalog"
)

// MemoryDirectory is an in-memory Directory. A single RWMutex guards the
// keyed store so a FindActive racing an UpdateEndDate cannot observe a torn
// end instant. Returned enrolments are copies: holders reference records by
// ID and re-fetch through the directory instead of aliasing live state.
type MemoryDirectory struct {
	mu      sync.RWMutex
	order   []string              // IDs in creation order
	entries map[string]*Enrolment // ID -> stored enrolment
}

var _ Directory = (*MemoryDirectory)(nil)

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{entries: make(map[string]*Enrolment)}
}

// Create implements Directory. A duplicate ID replaces the prior entry and
// keeps its original creation-order position.
func (d *MemoryDirectory) Create(_ context.Context, id string, student catalog.Student, course *catalog.Course, startsAt, endsAt time.Time) (*Enrolment, error) {
	e := &Enrolment{
		ID:       id,
		Student:  student,
		Course:   course,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.entries[id]; !exists {
		d.order = append(d.order, id)
	}
	d.entries[id] = e
	return e.Clone(), nil
}

// Get implements Directory.
func (d *MemoryDirectory) Get(_ context.Context, id string) (*Enrolment, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.Clone(), nil
}

// FindActive implements Directory. The scan walks creation order, so the
// first enrolment created wins when windows overlap.
func (d *MemoryDirectory) FindActive(_ context.Context, student catalog.Student, course *catalog.Course, at time.Time) (*Enrolment, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, id := range d.order {
		e := d.entries[id]
		if e.Student.ID == student.ID && e.Course.ID == course.ID && e.ActiveAt(at) {
			return e.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// UpdateEndDate implements Directory.
func (d *MemoryDirectory) UpdateEndDate(_ context.Context, id string, newEnd time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.EndsAt = newEnd
	return nil
}

// ListByStudent implements Directory.
func (d *MemoryDirectory) ListByStudent(_ context.Context, student catalog.Student) ([]*Enrolment, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*Enrolment
	for _, id := range d.order {
		if e := d.entries[id]; e.Student.ID == student.ID {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}
