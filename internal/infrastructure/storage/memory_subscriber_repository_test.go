package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySubscriberRepository_GetCreatesOnce(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	first, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	second, err := repo.Get(ctx, 1, 99)
	require.NoError(t, err)

	require.NotSame(t, first, second)
	require.Equal(t, *first, *second)
	require.Equal(t, int64(10), second.ChatID)
}

func TestMemorySubscriberRepository_ChangesNeedSave(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	sub, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)

	sub.SetMuted(true)
	stored, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.False(t, stored.Muted)

	require.NoError(t, repo.Save(ctx, sub))
	sub.SetMuted(false)
	stored, err = repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.True(t, stored.Muted)
}

func TestMemorySubscriberRepository_ListAndDelete(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	_, _ = repo.Get(ctx, 3, 30)
	_, _ = repo.Get(ctx, 1, 10)

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, int64(1), subs[0].ID)

	// List отдаёт копии
	subs[0].Muted = true
	again, _ := repo.Get(ctx, 1, 10)
	require.False(t, again.Muted)

	require.NoError(t, repo.Delete(ctx, 1))
	subs, _ = repo.List(ctx)
	require.Len(t, subs, 1)
	require.Equal(t, int64(3), subs[0].ID)
}
