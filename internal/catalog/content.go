// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package catalog contains the course catalog entities: students, courses,
// and the content items a course is made of.
package catalog

import (
	"errors"
	"time"
)

// ContentKind identifies the variant of a content item.
type ContentKind string

// Content kinds.
const (
	KindLesson       ContentKind = "lesson"
	KindHomework     ContentKind = "homework"
	KindPrepMaterial ContentKind = "prep_material"
)

// String returns the string representation of the kind.
func (k ContentKind) String() string {
	return string(k)
}

// ErrInvalidContentKind indicates an unrecognized content kind.
var ErrInvalidContentKind = errors.New("invalid content kind")

// Validate checks that the kind is a known content variant.
func (k ContentKind) Validate() error {
	switch k {
	case KindLesson, KindHomework, KindPrepMaterial:
		return nil
	default:
		return ErrInvalidContentKind
	}
}

// ValidContentKinds returns all valid content kinds.
func ValidContentKinds() []ContentKind {
	return []ContentKind{KindLesson, KindHomework, KindPrepMaterial}
}

// ContentItem is a single piece of course content. Availability is selected
// by Kind: lessons gate on their own scheduled instant, homework and prep
// materials gate on the course start.
type ContentItem struct {
	ID          string
	Title       string
	Kind        ContentKind
	ScheduledAt time.Time // lessons only; zero value for other kinds
}

// NewLesson creates a lesson scheduled for a specific instant.
func NewLesson(id, title string, scheduledAt time.Time) ContentItem {
	return ContentItem{ID: id, Title: title, Kind: KindLesson, ScheduledAt: scheduledAt}
}

// NewHomework creates a homework item, available from course start.
func NewHomework(id, title string) ContentItem {
	return ContentItem{ID: id, Title: title, Kind: KindHomework}
}

// NewPrepMaterial creates a preparatory material, available from course start.
func NewPrepMaterial(id, title string) ContentItem {
	return ContentItem{ID: id, Title: title, Kind: KindPrepMaterial}
}

// AvailableAt reports whether the item can be accessed at the given instant
// for a course that started at courseStart. Both boundaries are inclusive:
// an item becomes available exactly at its gating instant.
func (c ContentItem) AvailableAt(at, courseStart time.Time) bool {
	if c.Kind == KindLesson {
		return !at.Before(c.ScheduledAt)
	}
	return !at.Before(courseStart)
}
