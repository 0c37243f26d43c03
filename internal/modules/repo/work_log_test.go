package repo

import (
	"context"
	"testing"
	"time"

	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkLogRepo_CreateAndList(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	a := f.task(t, f.project, "a", model.TaskStatusTodo)
	b := f.task(t, f.project, "b", model.TaskStatusTodo)

	r := NewWorkLogRepo(f.db)
	start := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	notes := "pairing"

	require.NoError(t, r.Create(ctx, &model.WorkLog{
		UserID:     f.user.ID,
		TaskID:     a.ID,
		StartedAt:  &start,
		EndedAt:    &end,
		DeltaHours: decimal.NewNullDecimal(decimal.RequireFromString("1.5")),
		Notes:      &notes,
	}))
	require.NoError(t, r.Create(ctx, &model.WorkLog{UserID: f.user.ID, TaskID: b.ID}))

	all, err := r.List(ctx, WorkLogFilter{UserID: &f.user.ID}, MaxListRows)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onA, err := r.List(ctx, WorkLogFilter{TaskID: &a.ID}, MaxListRows)
	require.NoError(t, err)
	require.Len(t, onA, 1)
	assert.True(t, onA[0].DeltaHours.Decimal.Equal(decimal.RequireFromString("1.5")))
	require.NotNil(t, onA[0].StartedAt)
	assert.True(t, onA[0].StartedAt.Equal(start))
	assert.Equal(t, "pairing", *onA[0].Notes)
}

func TestNotificationRepo_ListPending(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	r := NewNotificationRepo(f.db)

	pending := &model.Notification{UserID: f.user.ID, Payload: `{"kind":"assigned"}`, Sent: model.NotificationPending}
	require.NoError(t, r.Create(ctx, pending))
	require.NoError(t, r.Create(ctx, &model.Notification{UserID: f.user.ID, Payload: "old", Sent: model.NotificationSent}))

	items, err := r.ListPending(ctx, f.user.ID, MaxListRows)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, pending.ID, items[0].ID)
	assert.Equal(t, `{"kind":"assigned"}`, items[0].Payload)
}
