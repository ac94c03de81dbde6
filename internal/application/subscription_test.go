package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"sentry-bot/internal/infrastructure/storage"
)

func TestSubscriptionService_SubscribeAndUnsubscribe(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, 1, 10)
	require.NoError(t, err)
	require.False(t, sub.Muted)

	chats, err := svc.Recipients(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{10}, chats)

	require.NoError(t, svc.Unsubscribe(ctx, 1))
	chats, err = svc.Recipients(ctx)
	require.NoError(t, err)
	require.Empty(t, chats)
}

func TestSubscriptionService_MutedChatsSkipped(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, 1, 10)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, 2, 20)
	require.NoError(t, err)

	sub, err := svc.SetMuted(ctx, 1, 10, true)
	require.NoError(t, err)
	require.True(t, sub.Muted)

	chats, err := svc.Recipients(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{20}, chats)
}

func TestSubscriptionService_ConcurrentSubscribeAndRecipients(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := svc.Subscribe(ctx, 1, 10)
			require.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := svc.SetMuted(ctx, 1, 10, i%2 == 0)
			require.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := svc.Recipients(ctx)
			require.NoError(t, err)
		}
	}()
	wg.Wait()

	_, err := svc.Subscribe(ctx, 1, 10)
	require.NoError(t, err)
	chats, err := svc.Recipients(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{10}, chats)
}
