// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/myedspace/lms/internal/catalog"
	"github.com/myedspace/lms/internal/enrolment"
)

// EnrolmentRepository implements enrolment.Directory on PostgreSQL. Rows
// carry a monotonic seq so lookups preserve creation order: when several
// enrolments are active at once, the earliest-created one wins, matching
// the in-memory directory.
type EnrolmentRepository struct {
	pool poolIface
	cat  *CatalogRepository
}

var _ enrolment.Directory = (*EnrolmentRepository)(nil)

// NewEnrolmentRepository creates an EnrolmentRepository. The catalog
// repository rehydrates student and course values for returned enrolments.
func NewEnrolmentRepository(pool poolIface, cat *CatalogRepository) *EnrolmentRepository {
	return &EnrolmentRepository{pool: pool, cat: cat}
}

// Create persists an enrolment. Reusing an existing ID overwrites the
// period but keeps the row's original seq, so its place in creation order
// is unchanged.
func (r *EnrolmentRepository) Create(ctx context.Context, id string, student catalog.Student, course *catalog.Course, startsAt, endsAt time.Time) (*enrolment.Enrolment, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO enrolments (id, student_id, course_id, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			student_id = $2, course_id = $3, starts_at = $4, ends_at = $5
	`, id, student.ID, course.ID, startsAt, endsAt)
	if err != nil {
		return nil, oops.With("operation", "create enrolment").With("id", id).Wrap(err)
	}

	return &enrolment.Enrolment{
		ID:       id,
		Student:  student,
		Course:   course,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}, nil
}

// Get retrieves an enrolment by ID.
func (r *EnrolmentRepository) Get(ctx context.Context, id string) (*enrolment.Enrolment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, student_id, course_id, starts_at, ends_at
		FROM enrolments WHERE id = $1
	`, id)
	enr, err := r.scanEnrolment(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ENROLMENT_NOT_FOUND").With("id", id).Wrap(enrolment.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get enrolment").With("id", id).Wrap(err)
	}
	return enr, nil
}

// FindActive returns the earliest-created enrolment of the student on the
// course whose period covers the given instant.
func (r *EnrolmentRepository) FindActive(ctx context.Context, student catalog.Student, course *catalog.Course, at time.Time) (*enrolment.Enrolment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, student_id, course_id, starts_at, ends_at
		FROM enrolments
		WHERE student_id = $1 AND course_id = $2 AND starts_at <= $3 AND ends_at >= $3
		ORDER BY seq LIMIT 1
	`, student.ID, course.ID, at)
	enr, err := r.scanEnrolment(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ENROLMENT_NOT_FOUND").
			With("student_id", student.ID).With("course_id", course.ID).Wrap(enrolment.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "find active enrolment").
			With("student_id", student.ID).With("course_id", course.ID).Wrap(err)
	}
	return enr, nil
}

// UpdateEndDate changes an enrolment's end date.
func (r *EnrolmentRepository) UpdateEndDate(ctx context.Context, id string, newEnd time.Time) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE enrolments SET ends_at = $2 WHERE id = $1`, id, newEnd)
	if err != nil {
		return oops.With("operation", "update enrolment end date").With("id", id).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ENROLMENT_NOT_FOUND").With("id", id).Wrap(enrolment.ErrNotFound)
	}
	return nil
}

// ListByStudent returns the student's enrolments in creation order.
func (r *EnrolmentRepository) ListByStudent(ctx context.Context, student catalog.Student) ([]*enrolment.Enrolment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, student_id, course_id, starts_at, ends_at
		FROM enrolments WHERE student_id = $1 ORDER BY seq
	`, student.ID)
	if err != nil {
		return nil, oops.With("operation", "list enrolments").With("student_id", student.ID).Wrap(err)
	}
	defer rows.Close()

	var enrolments []*enrolment.Enrolment
	for rows.Next() {
		enr, err := r.scanEnrolment(ctx, rows)
		if err != nil {
			return nil, oops.With("operation", "scan enrolment row").With("student_id", student.ID).Wrap(err)
		}
		enrolments = append(enrolments, enr)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate enrolments").With("student_id", student.ID).Wrap(err)
	}
	return enrolments, nil
}

// scanEnrolment reads one enrolment row and rehydrates its student and
// course through the catalog repository.
func (r *EnrolmentRepository) scanEnrolment(ctx context.Context, row pgx.Row) (*enrolment.Enrolment, error) {
	var (
		enr       enrolment.Enrolment
		studentID string
		courseID  string
	)
	if err := row.Scan(&enr.ID, &studentID, &courseID, &enr.StartsAt, &enr.EndsAt); err != nil {
		return nil, err
	}

	student, err := r.cat.Student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	course, err := r.cat.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enr.Student = student
	enr.Course = course
	return &enr, nil
}
