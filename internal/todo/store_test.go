package todo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/models"
	"github.com/dmitrijs2005/todokeeper/internal/storage"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	s, err := NewStore(context.Background(), mem, discardLogger())
	require.NoError(t, err)
	return s, mem
}

func TestCreate_ThenGet(t *testing.T) {
	s, mem := newTestStore(t)

	due, err := models.ParseDueDate("2026-09-01")
	require.NoError(t, err)

	created, err := s.Create(context.Background(), "write report", "quarterly numbers", models.PriorityHigh, &due, "owner-1")
	require.NoError(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, "write report", got.Title)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, "owner-1", got.UserID)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	// date-only input was normalized to the end of the day
	require.NotNil(t, got.DueDate)
	assert.Equal(t, 23, got.DueDate.Hour())
	assert.Equal(t, 59, got.DueDate.Minute())
	assert.Equal(t, 59, got.DueDate.Second())

	// persisted and mirrored
	assert.Len(t, mem.Tasks, 1)
	assert.Equal(t, []string{created.ID}, mem.MirrorIDs)
}

func TestCreate_EmptyTitle(t *testing.T) {
	s, mem := newTestStore(t)

	_, err := s.Create(context.Background(), "", "", models.PriorityMedium, nil, "owner-1")
	assert.ErrorIs(t, err, common.ErrorEmptyTitle)
	assert.Empty(t, mem.Tasks)
}

func TestCreate_MirrorFailureIsNonFatal(t *testing.T) {
	s, mem := newTestStore(t)
	mem.FailMirror = errors.New("disk full")

	created, err := s.Create(context.Background(), "write report", "", models.PriorityLow, nil, "owner-1")
	require.NoError(t, err, "mirror failure must not block the structured store")

	assert.Len(t, mem.Tasks, 1)
	_, err = s.Get(created.ID)
	assert.NoError(t, err)
}

func TestCreate_SaveFailureRollsBack(t *testing.T) {
	s, mem := newTestStore(t)
	mem.FailSaveTasks = errors.New("disk full")

	_, err := s.Create(context.Background(), "write report", "", models.PriorityLow, nil, "owner-1")
	require.Error(t, err)

	assert.Empty(t, s.ListForOwner("owner-1"))
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestComplete(t *testing.T) {
	s, _ := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	created, err := s.Create(context.Background(), "write report", "", models.PriorityMedium, nil, "owner-1")
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, s.Complete(context.Background(), created.ID))

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, base.Add(time.Hour), got.UpdatedAt)
}

func TestComplete_IdempotentStatusButUpdatedAtRefreshed(t *testing.T) {
	s, _ := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	created, err := s.Create(context.Background(), "write report", "", models.PriorityMedium, nil, "owner-1")
	require.NoError(t, err)

	require.NoError(t, s.Complete(context.Background(), created.ID))

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	require.NoError(t, s.Complete(context.Background(), created.ID))

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, base.Add(2*time.Hour), got.UpdatedAt)
}

func TestComplete_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	assert.ErrorIs(t, s.Complete(context.Background(), "missing"), common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	s, _ := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	created, err := s.Create(context.Background(), "write report", "", models.PriorityMedium, nil, "owner-1")
	require.NoError(t, err)

	edited := *created
	edited.Title = "write annual report"
	edited.Priority = models.PriorityHigh

	s.now = func() time.Time { return base.Add(time.Minute) }
	require.NoError(t, s.Update(context.Background(), edited))

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "write annual report", got.Title)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, models.StatusPending, got.Status, "editing never changes status")
	assert.Equal(t, base.Add(time.Minute), got.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Update(context.Background(), models.Task{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	s, mem := newTestStore(t)

	created, err := s.Create(context.Background(), "write report", "", models.PriorityMedium, nil, "owner-1")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))

	_, err = s.Get(created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Empty(t, mem.Tasks)
	assert.Empty(t, mem.MirrorIDs)
}

func TestDelete_NotFoundLeavesCollectionUnchanged(t *testing.T) {
	s, mem := newTestStore(t)

	_, err := s.Create(context.Background(), "write report", "", models.PriorityMedium, nil, "owner-1")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(context.Background(), "missing"), common.ErrorNotFound)
	assert.Len(t, mem.Tasks, 1)
}

func TestListForOwner_NeverLeaksOtherOwners(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(context.Background(), "a1", "", models.PriorityLow, nil, "owner-a")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "a2", "", models.PriorityLow, nil, "owner-a")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "b1", "", models.PriorityLow, nil, "owner-b")
	require.NoError(t, err)

	forA := s.ListForOwner("owner-a")
	require.Len(t, forA, 2)
	for _, task := range forA {
		assert.Equal(t, "owner-a", task.UserID)
	}

	forB := s.ListForOwner("owner-b")
	require.Len(t, forB, 1)
	assert.Equal(t, "b1", forB[0].Title)

	assert.Empty(t, s.ListForOwner("owner-c"))
}
