package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "sentry-bot/internal/application"
	"sentry-bot/internal/container"
	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я слежу за камерой: жду движения и ищу на кадре человека.

📋 Команды:
/watch — начать наблюдение
/stop — остановить наблюдение
/status — текущее состояние и последний кадр
/subscribe — получать тревоги в этот чат
/unsubscribe — не получать тревоги
/mute — временно не присылать тревоги
/unmute — снова присылать тревоги
/help — справка`

	msgHelp = `ℹ️ Как это работает:

1️⃣ Пока в кадре ничего не меняется, бот дёшево ищет движение
2️⃣ Когда движение найдено, камера перезапускается и включается поиск человека
3️⃣ Если человек в кадре — приходит тревога с фото
4️⃣ Если человека нет — бот снова ждёт движения

📋 Команды:
/watch, /stop, /status, /subscribe, /unsubscribe, /mute, /unmute`

	msgWatchStarted    = "▶️ Наблюдение запущено. Тревоги будут приходить в этот чат."
	msgAlreadyRunning  = "ℹ️ Наблюдение уже идёт."
	msgWatchStopped    = "⏹ Наблюдение остановлено, камера освобождена."
	msgSubscribed      = "🔔 Тревоги будут приходить в этот чат."
	msgUnsubscribed    = "🔕 Тревоги в этот чат больше не придут."
	msgMuted           = "🔇 Тревоги приглушены. /unmute, чтобы снова их получать."
	msgUnmuted         = "🔊 Тревоги снова будут приходить в этот чат."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgSendCommand     = "📋 Используйте /help, чтобы увидеть список команд."
	msgStartFailed     = "⚠️ Не удалось запустить наблюдение: %v"
	msgProcessingError = "⚠️ Не удалось выполнить команду. Попробуйте ещё раз."
)

// Bot представляет Telegram-бота: пульт управления и канал тревог
type Bot struct {
	api           *tgbotapi.BotAPI
	services      *container.Container
	encoder       port.FrameEncoder
	watchConfig   entity.ControllerConfig
	detectorReady bool
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container, encoder port.FrameEncoder, watchConfig entity.ControllerConfig, detectorReady bool) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		services:      services,
		encoder:       encoder,
		watchConfig:   watchConfig,
		detectorReady: detectorReady,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// Notify рассылает тревогу подписанным чатам
func (b *Bot) Notify(ctx context.Context, s entity.Snapshot) error {
	chats, err := b.services.SubscriptionService.Recipients(ctx)
	if err != nil {
		return fmt.Errorf("list recipients: %w", err)
	}
	if len(chats) == 0 {
		return nil
	}

	photo := b.encodeFrame(s)
	caption := "🚨 " + formatStatus(s, b.detectorReady)

	var errs []error
	for _, chatID := range chats {
		if err := b.send(chatID, caption, photo); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}

	return errors.Join(errs...)
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendCommand)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "watch":
		b.handleWatch(ctx, msg)

	case "stop":
		if err := b.services.Controller.Stop(); err != nil {
			log.Printf("Error stopping watch: %v", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, msgWatchStopped)

	case "status":
		s := b.services.Controller.Status()
		if err := b.send(chatID, formatStatus(s, b.detectorReady), b.encodeFrame(s)); err != nil {
			log.Printf("Error sending status: %v", err)
		}

	case "subscribe":
		if _, err := b.services.SubscriptionService.Subscribe(ctx, msg.From.ID, chatID); err != nil {
			log.Printf("Error subscribing: %v", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, msgSubscribed)

	case "unsubscribe":
		if err := b.services.SubscriptionService.Unsubscribe(ctx, msg.From.ID); err != nil {
			log.Printf("Error unsubscribing: %v", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, msgUnsubscribed)

	case "mute":
		b.handleMute(ctx, msg, true)

	case "unmute":
		b.handleMute(ctx, msg, false)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

func (b *Bot) handleWatch(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// Кто запустил наблюдение, тот и получает тревоги
	if _, err := b.services.SubscriptionService.Subscribe(ctx, msg.From.ID, chatID); err != nil {
		log.Printf("Error subscribing: %v", err)
	}

	err := b.services.Controller.Start(ctx, b.watchConfig)
	switch {
	case err == nil:
		b.sendMessage(chatID, msgWatchStarted)
	case errors.Is(err, app.ErrAlreadyRunning):
		b.sendMessage(chatID, msgAlreadyRunning)
	default:
		log.Printf("Error starting watch: %v", err)
		b.sendMessage(chatID, fmt.Sprintf(msgStartFailed, err))
	}
}

func (b *Bot) handleMute(ctx context.Context, msg *tgbotapi.Message, muted bool) {
	chatID := msg.Chat.ID

	if _, err := b.services.SubscriptionService.SetMuted(ctx, msg.From.ID, chatID, muted); err != nil {
		log.Printf("Error changing mute for chat %d: %v", chatID, err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	if muted {
		b.sendMessage(chatID, msgMuted)
	} else {
		b.sendMessage(chatID, msgUnmuted)
	}
}

// encodeFrame кодирует кадр снимка, nil если кадра нет
func (b *Bot) encodeFrame(s entity.Snapshot) []byte {
	if !s.HasFrame() || b.encoder == nil {
		return nil
	}

	data, err := b.encoder.Encode(s.Frame)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return nil
	}
	return data
}

// send отправляет фото с подписью или просто текст
func (b *Bot) send(chatID int64, text string, photo []byte) error {
	if len(photo) == 0 {
		_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
		return err
	}

	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "frame.jpg", Bytes: photo})
	msg.Caption = text
	_, err := b.api.Send(msg)
	return err
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// formatStatus готовит текст для /status и тревог
func formatStatus(s entity.Snapshot, detectorReady bool) string {
	var sb strings.Builder

	state := "⏸ остановлено"
	if s.Running {
		state = "▶️ идёт"
	}
	fmt.Fprintf(&sb, "Наблюдение: %s\n", state)
	fmt.Fprintf(&sb, "Статус: %s\n", s.Status)
	fmt.Fprintf(&sb, "Режим: %s\n", s.Mode)
	if s.Alert {
		sb.WriteString("Тревога: 🔴 человек в кадре\n")
	} else {
		sb.WriteString("Тревога: 🟢 нет\n")
	}
	if s.Cycle > 0 {
		fmt.Fprintf(&sb, "Цикл: %d\n", s.Cycle)
	}
	if detectorReady {
		sb.WriteString("Модель: готова")
	} else {
		sb.WriteString("Модель: не загружена")
	}

	return sb.String()
}

var _ port.Notifier = (*Bot)(nil)
