package storage

import (
	"context"
	"sort"
	"sync"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков
type MemorySubscriberRepository struct {
	mu          sync.RWMutex
	subscribers map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт новое in-memory хранилище
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subscribers: make(map[int64]*entity.Subscriber),
	}
}

// Get возвращает копию подписчика по ID, создаёт нового если не найден.
// Изменения копии попадают в хранилище только через Save.
func (r *MemorySubscriberRepository) Get(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error) {
	r.mu.RLock()
	sub, exists := r.subscribers[userID]
	if exists {
		cp := *sub
		r.mu.RUnlock()
		return &cp, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Кто-то мог успеть создать запись между блокировками
	if sub, exists := r.subscribers[userID]; exists {
		cp := *sub
		return &cp, nil
	}
	sub = entity.NewSubscriber(userID, chatID)
	r.subscribers[userID] = sub

	cp := *sub
	return &cp, nil
}

// Save сохраняет копию подписчика
func (r *MemorySubscriberRepository) Save(ctx context.Context, sub *entity.Subscriber) error {
	cp := *sub

	r.mu.Lock()
	r.subscribers[sub.ID] = &cp
	r.mu.Unlock()

	return nil
}

// Delete удаляет подписчика
func (r *MemorySubscriberRepository) Delete(ctx context.Context, userID int64) error {
	r.mu.Lock()
	delete(r.subscribers, userID)
	r.mu.Unlock()

	return nil
}

// List возвращает копии всех подписчиков, упорядоченные по ID
func (r *MemorySubscriberRepository) List(ctx context.Context) ([]*entity.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Subscriber, 0, len(r.subscribers))
	for _, sub := range r.subscribers {
		cp := *sub
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
