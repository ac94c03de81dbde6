package vision

import (
	"context"
	"fmt"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// UnavailableDetector подставляется, когда модель не загрузилась.
// Каждый Detect возвращает причину, контроллер показывает её в статусе.
type UnavailableDetector struct {
	Err error
}

func (d UnavailableDetector) Detect(ctx context.Context, frame *entity.Frame, opts entity.DetectOptions) (*entity.DetectionResult, error) {
	return nil, fmt.Errorf("model is not loaded: %w", d.Err)
}

func (d UnavailableDetector) Annotate(frame *entity.Frame, result *entity.DetectionResult) (*entity.Frame, error) {
	return frame, nil
}

var _ port.PersonDetector = UnavailableDetector{}
