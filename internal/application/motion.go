package app

import (
	"errors"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// MotionDetector решает, есть ли в кадре движение.
// Модель фона обновляется каждым кадром, поэтому кормить её можно
// только в режиме ожидания движения.
type MotionDetector struct {
	model     port.BackgroundModel
	threshold int
}

// NewMotionDetector создаёт детектор движения поверх модели фона.
func NewMotionDetector(model port.BackgroundModel, threshold int) *MotionDetector {
	return &MotionDetector{
		model:     model,
		threshold: threshold,
	}
}

// Observe возвращает true, если пикселей переднего плана строго больше порога.
func (d *MotionDetector) Observe(frame *entity.Frame) (bool, error) {
	if frame.Empty() {
		return false, entity.NewCaptureError("observe", errors.New("empty frame"))
	}

	count, err := d.model.Apply(frame)
	if err != nil {
		return false, captureError("apply", err)
	}

	return count > d.threshold, nil
}

// Threshold возвращает порог срабатывания
func (d *MotionDetector) Threshold() int {
	return d.threshold
}

// captureError приводит ошибку к CaptureError, не оборачивая повторно.
func captureError(op string, err error) error {
	if errors.Is(err, entity.ErrCaptureFailure) {
		return err
	}
	return entity.NewCaptureError(op, err)
}
