package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{Email: "ana@example.com", Role: "member"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Nil(t, got.DisplayName)

	again, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = r.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.User{Email: "dup@example.com", Role: "member"}))
	err := r.Create(ctx, &model.User{Email: "dup@example.com", Role: "member"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepo_ListCapped(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	users := make([]*model.User, 0, MaxListRows+5)
	for i := 0; i < MaxListRows+5; i++ {
		users = append(users, &model.User{Email: fmt.Sprintf("u%d@example.com", i), Role: "member"})
	}
	require.NoError(t, db.CreateInBatches(users, 100).Error)

	got, err := r.List(ctx, MaxListRows)
	require.NoError(t, err)
	assert.Len(t, got, MaxListRows)

	got, err = r.List(ctx, 10_000)
	require.NoError(t, err)
	assert.Len(t, got, MaxListRows)

	seen := make(map[uuid.UUID]bool, len(got))
	for _, u := range got {
		assert.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
	}
}
