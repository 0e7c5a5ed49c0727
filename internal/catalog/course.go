// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package catalog

import "time"

// Course groups content items under a scheduling window. Content is keyed by
// ID and kept in insertion order. Courses are built once during setup and
// read-only while access decisions are evaluated.
type Course struct {
	ID       string
	Title    string
	StartsAt time.Time
	EndsAt   *time.Time // nil for open-ended courses

	items []ContentItem
	index map[string]int // content ID -> position in items
}

// NewCourse creates a course. endsAt may be nil for an open-ended course.
// Callers are expected to supply endsAt >= startsAt; the catalog does not
// validate the window.
func NewCourse(id, title string, startsAt time.Time, endsAt *time.Time) *Course {
	return &Course{
		ID:       id,
		Title:    title,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		index:    make(map[string]int),
	}
}

// AddContent registers an item under its ID. Re-adding an existing ID
// replaces the prior item in place, keeping its original position.
func (c *Course) AddContent(item ContentItem) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if pos, ok := c.index[item.ID]; ok {
		c.items[pos] = item
		return
	}
	c.index[item.ID] = len(c.items)
	c.items = append(c.items, item)
}

// Content returns the item registered under the given ID.
func (c *Course) Content(id string) (ContentItem, bool) {
	pos, ok := c.index[id]
	if !ok {
		return ContentItem{}, false
	}
	return c.items[pos], true
}

// AllContent returns all content items in insertion order.
func (c *Course) AllContent() []ContentItem {
	out := make([]ContentItem, len(c.items))
	copy(out, c.items)
	return out
}

// HasStartedAt reports whether the course has started at the given instant.
// The start instant itself counts as started.
func (c *Course) HasStartedAt(t time.Time) bool {
	return !t.Before(c.StartsAt)
}

// HasEndedAt reports whether the course has ended at the given instant.
// Always false for open-ended courses; the end instant itself still counts
// as running.
func (c *Course) HasEndedAt(t time.Time) bool {
	return c.EndsAt != nil && t.After(*c.EndsAt)
}

// IsRunningAt reports whether the course has started and not yet ended.
func (c *Course) IsRunningAt(t time.Time) bool {
	return c.HasStartedAt(t) && !c.HasEndedAt(t)
}
