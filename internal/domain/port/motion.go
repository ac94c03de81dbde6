package port

import "sentry-bot/internal/domain/entity"

// BackgroundModel адаптивная модель фона сцены
type BackgroundModel interface {
	// Apply обновляет модель кадром и возвращает число пикселей переднего плана
	Apply(frame *entity.Frame) (int, error)
}
