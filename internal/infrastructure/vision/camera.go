//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// Camera источник кадров на gocv.VideoCapture.
// Один мьютекс на чтение и закрытие: Close ждёт текущий Read.
type Camera struct {
	device  string
	mu      sync.Mutex
	capture *gocv.VideoCapture
	frame   gocv.Mat
}

// NewCamera создаёт камеру для устройства ("0", "/dev/video0" или URL потока).
func NewCamera(device string) *Camera {
	return &Camera{device: device}
}

// Open открывает устройство, предварительно освобождая прежний дескриптор.
func (c *Camera) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	releasePrevious(c.device, c.closeLocked)

	capture, err := gocv.OpenVideoCapture(c.device)
	if err != nil {
		return entity.NewCaptureError("open", fmt.Errorf("device %s: %w", c.device, err))
	}
	if !capture.IsOpened() {
		capture.Close()
		return entity.NewCaptureError("open", fmt.Errorf("device %s is not available", c.device))
	}

	c.capture = capture
	c.frame = gocv.NewMat()

	return nil
}

// Read читает следующий кадр.
func (c *Camera) Read(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil, entity.NewCaptureError("read", errors.New("device is not open"))
	}

	if ok := c.capture.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, entity.NewCaptureError("read", errors.New("failed to capture frame"))
	}

	frame, err := matToFrame(c.frame, time.Now())
	if err != nil {
		return nil, entity.NewCaptureError("read", err)
	}

	return frame, nil
}

// Close освобождает устройство. Повторный вызов безопасен.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closeLocked()
}

func (c *Camera) closeLocked() error {
	if c.capture == nil {
		return nil
	}

	err := c.capture.Close()
	c.frame.Close()
	c.capture = nil

	return err
}

var _ port.FrameSource = (*Camera)(nil)
