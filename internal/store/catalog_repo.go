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
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

// CatalogRepository persists students, courses and course content. It
// satisfies the boundary's catalog provider: Student and Course reassemble
// full catalog values from their rows.
type CatalogRepository struct {
	pool poolIface
}

// NewCatalogRepository creates a CatalogRepository.
func NewCatalogRepository(pool poolIface) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// Student retrieves a student by ID.
func (r *CatalogRepository) Student(ctx context.Context, id string) (catalog.Student, error) {
	var student catalog.Student
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM students WHERE id = $1`, id).Scan(&student.ID, &student.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Student{}, oops.Code("STUDENT_NOT_FOUND").With("id", id).Wrap(ErrNotFound)
	}
	if err != nil {
		return catalog.Student{}, oops.With("operation", "get student").With("id", id).Wrap(err)
	}
	return student, nil
}

// CreateStudent persists a student.
func (r *CatalogRepository) CreateStudent(ctx context.Context, student catalog.Student) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO students (id, name) VALUES ($1, $2)`, student.ID, student.Name)
	if err != nil {
		return oops.With("operation", "create student").With("id", student.ID).Wrap(err)
	}
	return nil
}

// Course retrieves a course with its content in course order.
func (r *CatalogRepository) Course(ctx context.Context, id string) (*catalog.Course, error) {
	var (
		title    string
		startsAt time.Time
		endsAt   *time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT title, starts_at, ends_at FROM courses WHERE id = $1`, id).
		Scan(&title, &startsAt, &endsAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("COURSE_NOT_FOUND").With("id", id).Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get course").With("id", id).Wrap(err)
	}

	course := catalog.NewCourse(id, title, startsAt, endsAt)

	rows, err := r.pool.Query(ctx, `
		SELECT content_id, title, kind, scheduled_at
		FROM course_content WHERE course_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return nil, oops.With("operation", "get course content").With("course_id", id).Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			contentID    string
			contentTitle string
			kind         string
			scheduledAt  *time.Time
		)
		if err := rows.Scan(&contentID, &contentTitle, &kind, &scheduledAt); err != nil {
			return nil, oops.With("operation", "scan course content row").With("course_id", id).Wrap(err)
		}
		item, err := contentItemFromRow(contentID, contentTitle, kind, scheduledAt)
		if err != nil {
			return nil, oops.With("course_id", id).With("content_id", contentID).Wrap(err)
		}
		course.AddContent(item)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate course content").With("course_id", id).Wrap(err)
	}

	return course, nil
}

// CreateCourse persists a course and its content rows. Content positions
// follow the course's insertion order.
func (r *CatalogRepository) CreateCourse(ctx context.Context, course *catalog.Course) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO courses (id, title, starts_at, ends_at) VALUES ($1, $2, $3, $4)`,
		course.ID, course.Title, course.StartsAt, course.EndsAt)
	if err != nil {
		return oops.With("operation", "create course").With("id", course.ID).Wrap(err)
	}

	for position, item := range course.AllContent() {
		var scheduledAt *time.Time
		if item.Kind == catalog.KindLesson {
			t := item.ScheduledAt
			scheduledAt = &t
		}
		_, err := r.pool.Exec(ctx, `
			INSERT INTO course_content (course_id, content_id, title, kind, scheduled_at, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, course.ID, item.ID, item.Title, item.Kind.String(), scheduledAt, position)
		if err != nil {
			return oops.With("operation", "create course content").
				With("course_id", course.ID).With("content_id", item.ID).Wrap(err)
		}
	}
	return nil
}

// Counts returns row counts for the status command.
func (r *CatalogRepository) Counts(ctx context.Context) (students, courses, enrolments int64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM enrolments)
	`).Scan(&students, &courses, &enrolments)
	if err != nil {
		return 0, 0, 0, oops.With("operation", "count catalog rows").Wrap(err)
	}
	return students, courses, enrolments, nil
}

// contentItemFromRow rebuilds a catalog content item from its columns.
func contentItemFromRow(id, title, kind string, scheduledAt *time.Time) (catalog.ContentItem, error) {
	switch catalog.ContentKind(kind) {
	case catalog.KindLesson:
		if scheduledAt == nil {
			return catalog.ContentItem{}, oops.Code("CORRUPT_CONTENT_ROW").
				Errorf("lesson %s has no scheduled time", id)
		}
		return catalog.NewLesson(id, title, *scheduledAt), nil
	case catalog.KindHomework:
		return catalog.NewHomework(id, title), nil
	case catalog.KindPrepMaterial:
		return catalog.NewPrepMaterial(id, title), nil
	default:
		return catalog.ContentItem{}, oops.Code("CORRUPT_CONTENT_ROW").
			Errorf("unknown content kind %q", kind)
	}
}
