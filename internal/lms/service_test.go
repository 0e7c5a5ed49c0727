// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package lms_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/myedspace/lms/internal/access"
	"github.com/myedspace/lms/internal/catalog"
	"github.com/myedspace/lms/internal/enrolment"
	"github.com/myedspace/lms/internal/lms"
)

// mockDirectory is a test mock for enrolment.Directory.
type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) Create(ctx context.Context, id string, student catalog.Student, course *catalog.Course, startsAt, endsAt time.Time) (*enrolment.Enrolment, error) {
	args := m.Called(ctx, id, student, course, startsAt, endsAt)
	if e := args.Get(0); e != nil {
		return e.(*enrolment.Enrolment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectory) Get(ctx context.Context, id string) (*enrolment.Enrolment, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*enrolment.Enrolment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectory) FindActive(ctx context.Context, student catalog.Student, course *catalog.Course, at time.Time) (*enrolment.Enrolment, error) {
	args := m.Called(ctx, student, course, at)
	if e := args.Get(0); e != nil {
		return e.(*enrolment.Enrolment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectory) UpdateEndDate(ctx context.Context, id string, newEnd time.Time) error {
	args := m.Called(ctx, id, newEnd)
	return args.Error(0)
}

func (m *mockDirectory) ListByStudent(ctx context.Context, student catalog.Student) ([]*enrolment.Enrolment, error) {
	args := m.Called(ctx, student)
	if e := args.Get(0); e != nil {
		return e.([]*enrolment.Enrolment), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	courseStart = time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	emma        = catalog.Student{ID: "1342", Name: "Emma"}
)

func testCourse() *catalog.Course {
	course := catalog.NewCourse("5874", "A-Level Biology", courseStart, nil)
	course.AddContent(catalog.NewPrepMaterial("8003", "Biology Reading Guide"))
	return course
}

func activeEnrolment(course *catalog.Course) *enrolment.Enrolment {
	return &enrolment.Enrolment{
		ID:       "e1",
		Student:  emma,
		Course:   course,
		StartsAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_CheckContentAccess(t *testing.T) {
	ctx := context.Background()
	course := testCourse()
	at := courseStart.Add(time.Hour)

	t.Run("delegates to the decision chain once an enrolment is found", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("FindActive", ctx, emma, course, at).Return(activeEnrolment(course), nil)

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		d, err := svc.CheckContentAccess(ctx, emma, course, "8003", at)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, access.ReasonGranted, d.Reason)
		dir.AssertExpectations(t)
	})

	t.Run("denies with no-active-enrolment before the chain runs", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("FindActive", ctx, emma, course, at).Return(nil, enrolment.ErrNotFound)

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		d, err := svc.CheckContentAccess(ctx, emma, course, "8003", at)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, access.ReasonNoActiveEnrolment, d.Reason)
	})

	t.Run("propagates directory failures", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("FindActive", ctx, emma, course, at).Return(nil, errors.New("connection refused"))

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		_, err := svc.CheckContentAccess(ctx, emma, course, "8003", at)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestService_AccessibleContent(t *testing.T) {
	ctx := context.Background()
	course := testCourse()
	at := courseStart.Add(time.Hour)

	t.Run("returns the filtered content", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("FindActive", ctx, emma, course, at).Return(activeEnrolment(course), nil)

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		items, err := svc.AccessibleContent(ctx, emma, course, at)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "8003", items[0].ID)
	})

	t.Run("returns empty slice without an active enrolment", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("FindActive", ctx, emma, course, at).Return(nil, enrolment.ErrNotFound)

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		items, err := svc.AccessibleContent(ctx, emma, course, at)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	t.Run("propagates directory failures", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("FindActive", ctx, emma, course, at).Return(nil, errors.New("timeout"))

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		_, err := svc.AccessibleContent(ctx, emma, course, at)
		assert.Error(t, err)
	})
}

func TestService_CreateEnrolment(t *testing.T) {
	ctx := context.Background()
	course := testCourse()
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	dir := &mockDirectory{}
	dir.On("Create", ctx, "e1", emma, course, start, end).Return(activeEnrolment(course), nil)

	svc := lms.NewService(lms.ServiceConfig{Directory: dir})
	require.NoError(t, svc.CreateEnrolment(ctx, "e1", emma, course, start, end))
	dir.AssertExpectations(t)
}

func TestService_UpdateEnrolmentEndDate(t *testing.T) {
	ctx := context.Background()
	newEnd := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	t.Run("propagates not found unchanged", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("UpdateEndDate", ctx, "missing", newEnd).Return(enrolment.ErrNotFound)

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		err := svc.UpdateEnrolmentEndDate(ctx, "missing", newEnd)
		assert.ErrorIs(t, err, enrolment.ErrNotFound)
	})

	t.Run("succeeds when the directory updates", func(t *testing.T) {
		dir := &mockDirectory{}
		dir.On("UpdateEndDate", ctx, "e1", newEnd).Return(nil)

		svc := lms.NewService(lms.ServiceConfig{Directory: dir})
		assert.NoError(t, svc.UpdateEnrolmentEndDate(ctx, "e1", newEnd))
	})
}
