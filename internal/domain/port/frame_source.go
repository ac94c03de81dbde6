package port

import (
	"context"

	"sentry-bot/internal/domain/entity"
)

// FrameSource источник кадров с устройства захвата
type FrameSource interface {
	// Open захватывает устройство. Повторный Open сначала освобождает прежний дескриптор.
	Open(ctx context.Context) error

	// Read возвращает следующий кадр или CaptureError
	Read(ctx context.Context) (*entity.Frame, error)

	// Close освобождает устройство. Дожидается незавершённого Read.
	Close() error
}
