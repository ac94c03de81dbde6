package app

import (
	"context"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// SubscriptionService управляет чатами, которые получают тревоги
type SubscriptionService struct {
	repo port.SubscriberRepository
}

func NewSubscriptionService(repo port.SubscriberRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error) {
	sub, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	sub.SetMuted(false)
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID int64) error {
	return s.repo.Delete(ctx, userID)
}

func (s *SubscriptionService) SetMuted(ctx context.Context, userID, chatID int64, muted bool) (*entity.Subscriber, error) {
	sub, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	sub.SetMuted(muted)
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Recipients возвращает чаты, которым сейчас нужно слать тревоги
func (s *SubscriptionService) Recipients(ctx context.Context) ([]int64, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	chats := make([]int64, 0, len(subs))
	for _, sub := range subs {
		if sub.Muted {
			continue
		}
		chats = append(chats, sub.ChatID)
	}

	return chats, nil
}
