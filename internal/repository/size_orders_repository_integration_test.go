//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeOrdersRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewSizeOrdersRepository(openTestDB(t))

	t.Run("no active config", func(t *testing.T) {
		active, err := repo.GetActive(ctx)
		assert.NoError(t, err)
		assert.Nil(t, active)

		configs, err := repo.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, configs)
	})

	t.Run("create first version", func(t *testing.T) {
		config, err := repo.Create(ctx, []int{14, 12, 16}, "ops", "season start")
		require.NoError(t, err)
		assert.Equal(t, []int{14, 12, 16}, config.Sizes)
		assert.True(t, config.Active)
		assert.Equal(t, 1, config.Version)
		assert.Equal(t, "ops", config.CreatedBy)
		assert.Equal(t, "season start", config.Note)
		assert.False(t, config.ID.IsZero())
	})

	t.Run("new version replaces active", func(t *testing.T) {
		previous, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, previous)

		config, err := repo.Create(ctx, []int{12, 14, 16, 18}, "ops", "")
		require.NoError(t, err)
		assert.Equal(t, previous.Version+1, config.Version)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, config.ID, active.ID)
		assert.Equal(t, []int{12, 14, 16, 18}, active.Sizes)
	})

	t.Run("list is newest first", func(t *testing.T) {
		configs, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, configs, 2)
		assert.Equal(t, 2, configs[0].Version)
		assert.True(t, configs[0].Active)
		assert.False(t, configs[1].Active)

		limited, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}
