package container

import (
	app "sentry-bot/internal/application"
	"sentry-bot/internal/domain/port"
	"sentry-bot/internal/infrastructure/notify"
)

type Container struct {
	Board               *app.ResultBoard
	Controller          *app.ModeController
	SubscriptionService *app.SubscriptionService
	Notifiers           *notify.Multi
}

// New собирает сервисы. Получателей тревог можно добавить позже через Notifiers.Add.
func New(
	source port.FrameSource,
	model port.BackgroundModel,
	detector port.PersonDetector,
	subscribers port.SubscriberRepository,
	metrics port.Metrics,
	notifiers *notify.Multi,
) *Container {
	if notifiers == nil {
		notifiers = notify.NewMulti()
	}

	board := app.NewResultBoard()
	controller := app.NewModeController(source, model, detector, board, notifiers, metrics)

	return &Container{
		Board:               board,
		Controller:          controller,
		SubscriptionService: app.NewSubscriptionService(subscribers),
		Notifiers:           notifiers,
	}
}
