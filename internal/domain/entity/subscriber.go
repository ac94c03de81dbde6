package entity

// Subscriber чат Telegram, получающий тревоги
type Subscriber struct {
	ID     int64 // Telegram User ID
	ChatID int64 // Telegram Chat ID
	Muted  bool  // тревоги временно не отправляются
}

// NewSubscriber создаёт подписчика с включёнными уведомлениями
func NewSubscriber(userID, chatID int64) *Subscriber {
	return &Subscriber{
		ID:     userID,
		ChatID: chatID,
	}
}

// SetMuted включает или выключает уведомления
func (s *Subscriber) SetMuted(muted bool) {
	s.Muted = muted
}
