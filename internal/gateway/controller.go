// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/myedspace/lms/internal/catalog"
	"github.com/myedspace/lms/internal/enrolment"
	"github.com/myedspace/lms/internal/lms"
)

// CatalogProvider resolves student and course IDs to catalog entities. In a
// deployment this is backed by the store; tests supply fixtures.
type CatalogProvider interface {
	Student(ctx context.Context, id string) (catalog.Student, error)
	Course(ctx context.Context, id string) (*catalog.Course, error)
}

// Controller is the boundary adapter over the LMS service. Every method
// takes a raw JSON payload, validates it against the request schema,
// resolves entities through the catalog provider, and returns a typed
// response. Denials come back as normal responses; only malformed input
// and lookup failures are errors.
type Controller struct {
	service *lms.Service
	cat     CatalogProvider
}

// NewController creates a Controller.
func NewController(service *lms.Service, cat CatalogProvider) *Controller {
	return &Controller{service: service, cat: cat}
}

// CheckAccess handles a single-content access check.
func (c *Controller) CheckAccess(ctx context.Context, raw []byte) (*CheckAccessResponse, error) {
	var req CheckAccessRequest
	if err := decodeRequest(SchemaCheckAccess, raw, &req); err != nil {
		return nil, err
	}
	at, err := parseTimestamp("access_time", req.AccessTime)
	if err != nil {
		return nil, err
	}

	student, course, err := c.resolve(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}

	decision, err := c.service.CheckContentAccess(ctx, student, course, req.ContentID, at)
	if err != nil {
		return nil, err
	}

	return &CheckAccessResponse{
		Allowed:   decision.Allowed,
		Reason:    decision.Reason,
		Timestamp: at.Format(timestampFormat),
		StudentID: student.ID,
		CourseID:  course.ID,
		ContentID: req.ContentID,
	}, nil
}

// AccessibleContent handles an accessible-content listing.
func (c *Controller) AccessibleContent(ctx context.Context, raw []byte) (*AccessibleContentResponse, error) {
	var req AccessibleContentRequest
	if err := decodeRequest(SchemaAccessibleContent, raw, &req); err != nil {
		return nil, err
	}
	at, err := parseTimestamp("time", req.Time)
	if err != nil {
		return nil, err
	}

	student, course, err := c.resolve(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}

	items, err := c.service.AccessibleContent(ctx, student, course, at)
	if err != nil {
		return nil, err
	}

	payloads := make([]ContentPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, ContentPayload{
			ID:    item.ID,
			Title: item.Title,
			Type:  item.Kind.String(),
		})
	}

	return &AccessibleContentResponse{
		AccessibleContent: payloads,
		TotalCount:        len(payloads),
		Timestamp:         at.Format(timestampFormat),
		StudentID:         student.ID,
		CourseID:          course.ID,
	}, nil
}

// CreateEnrolment handles enrolment creation. An enrolment ID is generated
// when the request omits one.
func (c *Controller) CreateEnrolment(ctx context.Context, raw []byte) (*CreateEnrolmentResponse, error) {
	var req CreateEnrolmentRequest
	if err := decodeRequest(SchemaCreateEnrolment, raw, &req); err != nil {
		return nil, err
	}
	start, err := parseTimestamp("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	student, course, err := c.resolve(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}

	id := req.EnrolmentID
	if id == "" {
		id = NewEnrolmentID()
	}

	if err := c.service.CreateEnrolment(ctx, id, student, course, start, end); err != nil {
		return nil, err
	}

	return &CreateEnrolmentResponse{
		Success:     true,
		EnrolmentID: id,
		StudentID:   student.ID,
		CourseID:    course.ID,
		StartDate:   start.Format(timestampFormat),
		EndDate:     end.Format(timestampFormat),
	}, nil
}

// UpdateEnrolment handles an end-date correction for an existing enrolment.
func (c *Controller) UpdateEnrolment(ctx context.Context, enrolmentID string, raw []byte) (*UpdateEnrolmentResponse, error) {
	var req UpdateEnrolmentRequest
	if err := decodeRequest(SchemaUpdateEnrolment, raw, &req); err != nil {
		return nil, err
	}
	newEnd, err := parseTimestamp("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	if err := c.service.UpdateEnrolmentEndDate(ctx, enrolmentID, newEnd); err != nil {
		if errors.Is(err, enrolment.ErrNotFound) {
			return nil, oops.Code("ENROLMENT_NOT_FOUND").With("enrolment_id", enrolmentID).Wrap(err)
		}
		return nil, oops.With("enrolment_id", enrolmentID).Wrap(err)
	}

	return &UpdateEnrolmentResponse{
		Success:     true,
		EnrolmentID: enrolmentID,
		NewEndDate:  newEnd.Format(timestampFormat),
	}, nil
}

// NewEnrolmentID generates a boundary-side enrolment ID.
func NewEnrolmentID() string {
	return "enrol_" + ulid.Make().String()
}

func (c *Controller) resolve(ctx context.Context, studentID, courseID string) (catalog.Student, *catalog.Course, error) {
	student, err := c.cat.Student(ctx, studentID)
	if err != nil {
		return catalog.Student{}, nil, oops.Code("STUDENT_LOOKUP_FAILED").With("student_id", studentID).Wrap(err)
	}
	course, err := c.cat.Course(ctx, courseID)
	if err != nil {
		return catalog.Student{}, nil, oops.Code("COURSE_LOOKUP_FAILED").With("course_id", courseID).Wrap(err)
	}
	return student, course, nil
}

func decodeRequest(schema SchemaName, raw []byte, into any) error {
	if err := ValidateRequest(schema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return oops.Code("MALFORMED_REQUEST").Wrap(err)
	}
	return nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, value)
	if err != nil {
		return time.Time{}, oops.Code("MALFORMED_TIMESTAMP").With("field", field).With("value", value).Wrap(err)
	}
	return t, nil
}
