package port

import (
	"context"

	"sentry-bot/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков на тревоги
type SubscriberRepository interface {
	// Get возвращает подписчика по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error)

	// Save сохраняет подписчика
	Save(ctx context.Context, subscriber *entity.Subscriber) error

	// Delete удаляет подписчика
	Delete(ctx context.Context, userID int64) error

	// List возвращает всех подписчиков
	List(ctx context.Context) ([]*entity.Subscriber, error)
}
