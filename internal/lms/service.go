// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package lms composes the enrolment directory and the access decision
// chain into the public content-access operations.
package lms

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/myedspace/lms/internal/access"
	"github.com/myedspace/lms/internal/catalog"
	"github.com/myedspace/lms/internal/enrolment"
)

// ServiceConfig holds dependencies for Service.
type ServiceConfig struct {
	Directory enrolment.Directory
	Logger    *slog.Logger // optional; defaults to slog.Default()
}

// Service is the entry point for content access checks and enrolment
// management. All decision logic lives in the access package; the service
// contributes the active-enrolment lookup.
type Service struct {
	directory enrolment.Directory
	logger    *slog.Logger
}

// NewService creates a new Service with the given configuration.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		directory: cfg.Directory,
		logger:    logger,
	}
}

// CheckContentAccess decides whether the student may reach the given
// content at the given instant. A student with no active enrolment is
// denied with "No active enrolment found"; once the directory yields an
// active enrolment the decision chain takes over (its own activity check is
// then trivially satisfied).
func (s *Service) CheckContentAccess(ctx context.Context, student catalog.Student, course *catalog.Course, contentID string, at time.Time) (access.Decision, error) {
	enr, err := s.directory.FindActive(ctx, student, course, at)
	if errors.Is(err, enrolment.ErrNotFound) {
		return access.Denied(access.ReasonNoActiveEnrolment), nil
	}
	if err != nil {
		return access.Decision{}, oops.With("student_id", student.ID).With("course_id", course.ID).Wrap(err)
	}

	decision := access.CanAccess(student, contentID, course, enr, at)
	s.logger.DebugContext(ctx, "content access decided",
		"student_id", student.ID,
		"course_id", course.ID,
		"content_id", contentID,
		"allowed", decision.Allowed,
		"reason", decision.Reason)
	return decision, nil
}

// AccessibleContent returns all content the student may reach in the course
// at the given instant, in the course's content order. An empty slice is
// returned when no active enrolment exists.
func (s *Service) AccessibleContent(ctx context.Context, student catalog.Student, course *catalog.Course, at time.Time) ([]catalog.ContentItem, error) {
	enr, err := s.directory.FindActive(ctx, student, course, at)
	if errors.Is(err, enrolment.ErrNotFound) {
		return []catalog.ContentItem{}, nil
	}
	if err != nil {
		return nil, oops.With("student_id", student.ID).With("course_id", course.ID).Wrap(err)
	}

	return access.AccessibleContent(student, course, enr, at), nil
}

// CreateEnrolment registers a new enrolment under the given ID.
func (s *Service) CreateEnrolment(ctx context.Context, id string, student catalog.Student, course *catalog.Course, startsAt, endsAt time.Time) error {
	if _, err := s.directory.Create(ctx, id, student, course, startsAt, endsAt); err != nil {
		return oops.With("enrolment_id", id).Wrap(err)
	}
	s.logger.InfoContext(ctx, "enrolment created",
		"enrolment_id", id,
		"student_id", student.ID,
		"course_id", course.ID)
	return nil
}

// UpdateEnrolmentEndDate changes an enrolment's end instant, simulating a
// correction from an external system. Returns enrolment.ErrNotFound when
// the ID is unknown.
func (s *Service) UpdateEnrolmentEndDate(ctx context.Context, id string, newEnd time.Time) error {
	if err := s.directory.UpdateEndDate(ctx, id, newEnd); err != nil {
		if errors.Is(err, enrolment.ErrNotFound) {
			return err
		}
		return oops.With("enrolment_id", id).Wrap(err)
	}
	s.logger.InfoContext(ctx, "enrolment end date updated",
		"enrolment_id", id,
		"new_end", newEnd)
	return nil
}
