package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/leogretz2/bp-planner1/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without address", func(t *testing.T) {
		rdb, err := New(ctx, config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, rdb)
		assert.NoError(t, Close(rdb))
	})

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb, err := New(ctx, config.RedisConfig{Addr: mr.Addr(), PoolSize: 2})
		require.NoError(t, err)
		require.NotNil(t, rdb)
		assert.NoError(t, Close(rdb))
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		rdb, err := New(ctx, config.RedisConfig{Addr: addr})
		assert.Error(t, err)
		assert.Nil(t, rdb)
	})
}
