package port

import (
	"context"

	"sentry-bot/internal/domain/entity"
)

// Notifier внешний получатель тревог (звук, мессенджер, колбэк)
type Notifier interface {
	Notify(ctx context.Context, snapshot entity.Snapshot) error
}

// FrameEncoder кодирует кадр для показа пользователю
type FrameEncoder interface {
	Encode(frame *entity.Frame) ([]byte, error)
}
