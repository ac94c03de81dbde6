//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// MOG2Model модель фона на смеси гауссиан (параметры OpenCV по умолчанию).
type MOG2Model struct {
	mu   sync.Mutex
	mog2 gocv.BackgroundSubtractorMOG2
	mask gocv.Mat
}

func NewMOG2Model() *MOG2Model {
	return &MOG2Model{
		mog2: gocv.NewBackgroundSubtractorMOG2(),
		mask: gocv.NewMat(),
	}
}

// Apply обновляет модель и считает ненулевые пиксели маски переднего плана.
func (m *MOG2Model) Apply(frame *entity.Frame) (int, error) {
	mat, err := frameToMat(frame)
	if err != nil {
		return 0, fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.mog2.Apply(mat, &m.mask)

	return gocv.CountNonZero(m.mask), nil
}

func (m *MOG2Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mask.Close()
	return m.mog2.Close()
}

var _ port.BackgroundModel = (*MOG2Model)(nil)
