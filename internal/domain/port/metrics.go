package port

import (
	"time"

	"sentry-bot/internal/domain/entity"
)

// Metrics наблюдаемость рабочего цикла
type Metrics interface {
	ObserveCycle(mode entity.Mode, duration time.Duration)
	ObserveTransition(from, to entity.Mode)
	ObserveCaptureFailure()
	ObserveDetections(count int)
	SetAlert(alert bool)
	SetRunning(running bool)
}
