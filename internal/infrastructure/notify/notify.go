package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// Beep звуковой сигнал терминала (символ BEL)
type Beep struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBeep(w io.Writer) *Beep {
	return &Beep{w: w}
}

func (b *Beep) Notify(ctx context.Context, s entity.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("beep: %w", err)
	}
	return nil
}

// Silent ничего не делает
type Silent struct{}

func (Silent) Notify(ctx context.Context, s entity.Snapshot) error {
	return nil
}

// Func превращает функцию в Notifier
type Func func(ctx context.Context, s entity.Snapshot) error

func (f Func) Notify(ctx context.Context, s entity.Snapshot) error {
	return f(ctx, s)
}

// Multi рассылает тревогу всем получателям. Получателей можно
// добавлять после сборки контроллера (например, Telegram-бота).
type Multi struct {
	mu        sync.RWMutex
	notifiers []port.Notifier
}

func NewMulti(notifiers ...port.Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Add добавляет получателя
func (m *Multi) Add(n port.Notifier) {
	if n == nil {
		return
	}
	m.mu.Lock()
	m.notifiers = append(m.notifiers, n)
	m.mu.Unlock()
}

// Len возвращает число получателей
func (m *Multi) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.notifiers)
}

func (m *Multi) Notify(ctx context.Context, s entity.Snapshot) error {
	m.mu.RLock()
	notifiers := make([]port.Notifier, len(m.notifiers))
	copy(notifiers, m.notifiers)
	m.mu.RUnlock()

	var errs []error
	for _, n := range notifiers {
		if err := n.Notify(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build собирает получателей по именам из конфигурации: beep, silent.
// Неизвестные имена берутся из extra (например, "telegram").
func Build(names []string, w io.Writer, extra map[string]port.Notifier) (*Multi, error) {
	m := NewMulti()
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "":
			continue
		case "beep":
			m.Add(NewBeep(w))
		case "silent":
			m.Add(Silent{})
		default:
			n, ok := extra[name]
			if !ok {
				return nil, fmt.Errorf("unknown notifier %q", name)
			}
			if n == nil {
				log.Printf("Notifier %s is not configured, skipping", name)
				continue
			}
			m.Add(n)
		}
	}
	return m, nil
}

var (
	_ port.Notifier = (*Beep)(nil)
	_ port.Notifier = Silent{}
	_ port.Notifier = Func(nil)
	_ port.Notifier = (*Multi)(nil)
)
