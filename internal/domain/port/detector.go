package port

import (
	"context"

	"sentry-bot/internal/domain/entity"
)

// PersonDetector интерфейс детектора людей
type PersonDetector interface {
	// Detect ищет объекты заданного класса на кадре
	Detect(ctx context.Context, frame *entity.Frame, opts entity.DetectOptions) (*entity.DetectionResult, error)

	// Annotate рисует рамки на копии кадра
	Annotate(frame *entity.Frame, result *entity.DetectionResult) (*entity.Frame, error)
}
