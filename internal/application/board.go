package app

import (
	"errors"
	"sync"
	"time"

	"sentry-bot/internal/domain/entity"
)

var (
	ErrSubscriberExists   = errors.New("board subscriber already exists")
	ErrSubscriberNotFound = errors.New("board subscriber not found")
)

// ResultBoard доска результатов между рабочим циклом и слоем показа.
// Пишет только контроллер, читатели всегда видят целый снимок.
type ResultBoard struct {
	mu      sync.RWMutex
	current entity.Snapshot
	subs    map[string]chan entity.Snapshot
}

// NewResultBoard создаёт доску в состоянии "idle".
func NewResultBoard() *ResultBoard {
	return &ResultBoard{
		current: entity.Snapshot{
			Status:    StatusIdle,
			Mode:      entity.ModeMotionWatch,
			UpdatedAt: time.Now(),
		},
		subs: make(map[string]chan entity.Snapshot),
	}
}

// Publish целиком заменяет текущий снимок и раздаёт его подписчикам.
func (b *ResultBoard) Publish(s entity.Snapshot) {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = s
	for _, ch := range b.subs {
		deliverLatest(ch, s)
	}
}

// Snapshot возвращает последний опубликованный снимок.
func (b *ResultBoard) Snapshot() entity.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.current
}

// Clear сбрасывает кадр и тревогу, оставляя только статус.
func (b *ResultBoard) Clear(status string) {
	b.Publish(entity.Snapshot{
		Status: status,
		Mode:   entity.ModeMotionWatch,
	})
}

// Subscribe регистрирует получателя снимков. Медленный получатель
// теряет старые снимки, но всегда получает самый свежий.
func (b *ResultBoard) Subscribe(id string) (<-chan entity.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subs[id]; exists {
		return nil, ErrSubscriberExists
	}

	ch := make(chan entity.Snapshot, 1)
	ch <- b.current
	b.subs[id] = ch

	return ch, nil
}

// Unsubscribe снимает получателя и закрывает его канал.
func (b *ResultBoard) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, exists := b.subs[id]
	if !exists {
		return ErrSubscriberNotFound
	}

	delete(b.subs, id)
	close(ch)

	return nil
}

// deliverLatest вызывается под мьютексом доски, единственным отправителем.
func deliverLatest(ch chan entity.Snapshot, s entity.Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}

	// Выбрасываем устаревший снимок
	select {
	case <-ch:
	default:
	}

	select {
	case ch <- s:
	default:
	}
}
