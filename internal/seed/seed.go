// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package seed defines datasets for populating the catalog and enrolment
// tables, plus a reference dataset used by examples and CI.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/myedspace/lms/internal/catalog"
)

//go:embed reference.yaml
var referenceYAML []byte

// Dataset is the parsed form of a seed file.
type Dataset struct {
	Students   []StudentSeed   `yaml:"students"`
	Courses    []CourseSeed    `yaml:"courses"`
	Enrolments []EnrolmentSeed `yaml:"enrolments"`
}

// StudentSeed declares one student row.
type StudentSeed struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// CourseSeed declares one course with its content in course order.
type CourseSeed struct {
	ID       string        `yaml:"id"`
	Title    string        `yaml:"title"`
	StartsAt time.Time     `yaml:"starts_at"`
	EndsAt   *time.Time    `yaml:"ends_at"`
	Content  []ContentSeed `yaml:"content"`
}

// ContentSeed declares one content item. ScheduledAt is required for
// lessons and ignored for other kinds.
type ContentSeed struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Kind        string     `yaml:"kind"`
	ScheduledAt *time.Time `yaml:"scheduled_at"`
}

// EnrolmentSeed declares one enrolment period.
type EnrolmentSeed struct {
	ID        string    `yaml:"id"`
	StudentID string    `yaml:"student_id"`
	CourseID  string    `yaml:"course_id"`
	StartsAt  time.Time `yaml:"starts_at"`
	EndsAt    time.Time `yaml:"ends_at"`
}

// Reference returns the embedded reference dataset. It parses and
// validates at first use; a broken embedded file is a build defect.
func Reference() (Dataset, error) {
	return Parse(referenceYAML)
}

// Parse decodes and validates a seed file.
func Parse(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, oops.Code("SEED_PARSE_FAILED").Wrap(err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate checks internal consistency: unique IDs, known content kinds,
// scheduled times on lessons, and enrolments referencing declared rows.
func (d Dataset) Validate() error {
	students := make(map[string]struct{}, len(d.Students))
	for _, s := range d.Students {
		if s.ID == "" {
			return oops.Code("SEED_INVALID").Errorf("student with empty ID")
		}
		if _, dup := students[s.ID]; dup {
			return oops.Code("SEED_INVALID").Errorf("duplicate student ID %q", s.ID)
		}
		students[s.ID] = struct{}{}
	}

	courses := make(map[string]struct{}, len(d.Courses))
	for _, c := range d.Courses {
		if c.ID == "" {
			return oops.Code("SEED_INVALID").Errorf("course with empty ID")
		}
		if _, dup := courses[c.ID]; dup {
			return oops.Code("SEED_INVALID").Errorf("duplicate course ID %q", c.ID)
		}
		courses[c.ID] = struct{}{}

		seen := make(map[string]struct{}, len(c.Content))
		for _, item := range c.Content {
			if _, dup := seen[item.ID]; dup {
				return oops.Code("SEED_INVALID").
					Errorf("duplicate content ID %q in course %q", item.ID, c.ID)
			}
			seen[item.ID] = struct{}{}

			kind := catalog.ContentKind(item.Kind)
			if err := kind.Validate(); err != nil {
				return oops.Code("SEED_INVALID").With("course_id", c.ID).With("content_id", item.ID).Wrap(err)
			}
			if kind == catalog.KindLesson && item.ScheduledAt == nil {
				return oops.Code("SEED_INVALID").
					Errorf("lesson %q in course %q has no scheduled_at", item.ID, c.ID)
			}
		}
	}

	enrolments := make(map[string]struct{}, len(d.Enrolments))
	for _, e := range d.Enrolments {
		if e.ID == "" {
			return oops.Code("SEED_INVALID").Errorf("enrolment with empty ID")
		}
		if _, dup := enrolments[e.ID]; dup {
			return oops.Code("SEED_INVALID").Errorf("duplicate enrolment ID %q", e.ID)
		}
		enrolments[e.ID] = struct{}{}

		if _, ok := students[e.StudentID]; !ok {
			return oops.Code("SEED_INVALID").
				Errorf("enrolment %q references unknown student %q", e.ID, e.StudentID)
		}
		if _, ok := courses[e.CourseID]; !ok {
			return oops.Code("SEED_INVALID").
				Errorf("enrolment %q references unknown course %q", e.ID, e.CourseID)
		}
		if e.EndsAt.Before(e.StartsAt) {
			return oops.Code("SEED_INVALID").
				Errorf("enrolment %q ends before it starts", e.ID)
		}
	}

	return nil
}

// Student converts the seed row to a catalog value.
func (s StudentSeed) Student() catalog.Student {
	return catalog.Student{ID: s.ID, Name: s.Name}
}

// Course converts the seed row to a catalog value with content in the
// declared order.
func (c CourseSeed) Course() (*catalog.Course, error) {
	course := catalog.NewCourse(c.ID, c.Title, c.StartsAt, c.EndsAt)
	for _, item := range c.Content {
		switch catalog.ContentKind(item.Kind) {
		case catalog.KindLesson:
			if item.ScheduledAt == nil {
				return nil, fmt.Errorf("lesson %q has no scheduled_at", item.ID)
			}
			course.AddContent(catalog.NewLesson(item.ID, item.Title, *item.ScheduledAt))
		case catalog.KindHomework:
			course.AddContent(catalog.NewHomework(item.ID, item.Title))
		case catalog.KindPrepMaterial:
			course.AddContent(catalog.NewPrepMaterial(item.ID, item.Title))
		default:
			return nil, fmt.Errorf("unknown content kind %q", item.Kind)
		}
	}
	return course, nil
}
