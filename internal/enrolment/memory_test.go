// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package enrolment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/myedspace/lms/internal/catalog"
	"github.com/myedspace/lms/internal/enrolment"
)

var (
	emma    = catalog.Student{ID: "1342", Name: "Emma"}
	courseA = catalog.NewCourse("5874", "A-Level Biology",
		time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC), nil)
)

func mustCreate(t *testing.T, d *enrolment.MemoryDirectory, id string, s catalog.Student, c *catalog.Course, start, end time.Time) *enrolment.Enrolment {
	t.Helper()
	e, err := d.Create(context.Background(), id, s, c, start, end)
	require.NoError(t, err)
	return e
}

func TestMemoryDirectory_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	created := mustCreate(t, d, "e1", emma, courseA, start, end)
	assert.Equal(t, "e1", created.ID)

	got, err := d.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, emma, got.Student)
	assert.Equal(t, start, got.StartsAt)

	_, err = d.Get(ctx, "missing")
	assert.ErrorIs(t, err, enrolment.ErrNotFound)
}

func TestMemoryDirectory_Create_DuplicateIDOverwrites(t *testing.T) {
	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	mustCreate(t, d, "e1", emma, courseA, start, start.AddDate(0, 0, 10))
	mustCreate(t, d, "e1", emma, courseA, start, start.AddDate(0, 1, 0))

	got, err := d.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 1, 0), got.EndsAt)

	all, err := d.ListByStudent(ctx, emma)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryDirectory_FindActive(t *testing.T) {
	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	mustCreate(t, d, "e1", emma, courseA, start, end)

	t.Run("active inside the window", func(t *testing.T) {
		got, err := d.FindActive(ctx, emma, courseA, start.AddDate(0, 0, 10))
		require.NoError(t, err)
		assert.Equal(t, "e1", got.ID)
	})

	t.Run("not found outside the window", func(t *testing.T) {
		_, err := d.FindActive(ctx, emma, courseA, end.Add(time.Second))
		assert.ErrorIs(t, err, enrolment.ErrNotFound)
	})

	t.Run("not found for different student", func(t *testing.T) {
		other := catalog.Student{ID: "9999", Name: "Noah"}
		_, err := d.FindActive(ctx, other, courseA, start.AddDate(0, 0, 10))
		assert.ErrorIs(t, err, enrolment.ErrNotFound)
	})

	t.Run("not found for different course", func(t *testing.T) {
		chemistry := catalog.NewCourse("6001", "A-Level Chemistry", start, nil)
		_, err := d.FindActive(ctx, emma, chemistry, start.AddDate(0, 0, 10))
		assert.ErrorIs(t, err, enrolment.ErrNotFound)
	})
}

func TestMemoryDirectory_FindActive_FirstCreatedWins(t *testing.T) {
	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	mustCreate(t, d, "e1", emma, courseA, start, end)
	mustCreate(t, d, "e2", emma, courseA, start, end)

	got, err := d.FindActive(ctx, emma, courseA, start.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
}

func TestMemoryDirectory_UpdateEndDate(t *testing.T) {
	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	mustCreate(t, d, "e1", emma, courseA, start, end)

	newEnd := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, d.UpdateEndDate(ctx, "e1", newEnd))

	got, err := d.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, newEnd, got.EndsAt)

	// The change takes effect immediately for activity queries.
	_, err = d.FindActive(ctx, emma, courseA, newEnd.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, enrolment.ErrNotFound)

	assert.ErrorIs(t, d.UpdateEndDate(ctx, "missing", newEnd), enrolment.ErrNotFound)
}

func TestMemoryDirectory_UpdateEndDate_DoesNotAffectHeldCopies(t *testing.T) {
	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	held := mustCreate(t, d, "e1", emma, courseA, start, end)

	require.NoError(t, d.UpdateEndDate(ctx, "e1", start.AddDate(0, 0, 5)))

	// Holders keep a snapshot; re-fetching through the directory is the
	// only way to observe the mutation.
	assert.Equal(t, end, held.EndsAt)
	fresh, err := d.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 5), fresh.EndsAt)
}

func TestMemoryDirectory_ListByStudent(t *testing.T) {
	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	chemistry := catalog.NewCourse("6001", "A-Level Chemistry", start, nil)
	other := catalog.Student{ID: "9999", Name: "Noah"}

	mustCreate(t, d, "e1", emma, courseA, start, end)
	mustCreate(t, d, "e2", other, courseA, start, end)
	mustCreate(t, d, "e3", emma, chemistry, start, end)

	got, err := d.ListByStudent(ctx, emma)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e3", got[1].ID)

	none, err := d.ListByStudent(ctx, catalog.Student{ID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryDirectory_ConcurrentReads(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	d := enrolment.NewMemoryDirectory()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	mustCreate(t, d, "e1", emma, courseA, start, end)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if _, err := d.Get(ctx, "e1"); err != nil {
					t.Error(err)
					return
				}
				if _, err := d.FindActive(ctx, emma, courseA, start); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
