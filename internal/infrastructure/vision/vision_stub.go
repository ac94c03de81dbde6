//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"sentry-bot/internal/domain/entity"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// Camera заглушка камеры (без OpenCV).
type Camera struct {
	device string
}

func NewCamera(device string) *Camera {
	return &Camera{device: device}
}

// Open возвращает ошибку, если сборка без тега gocv.
func (c *Camera) Open(ctx context.Context) error {
	return entity.NewCaptureError("open", errNoGoCV)
}

// Read возвращает ошибку, если сборка без тега gocv.
func (c *Camera) Read(ctx context.Context) (*entity.Frame, error) {
	return nil, entity.NewCaptureError("read", errNoGoCV)
}

func (c *Camera) Close() error {
	return nil
}

// MOG2Model заглушка модели фона.
type MOG2Model struct{}

func NewMOG2Model() *MOG2Model {
	return &MOG2Model{}
}

// Apply возвращает ошибку, если сборка без тега gocv.
func (m *MOG2Model) Apply(frame *entity.Frame) (int, error) {
	_ = frame
	return 0, errNoGoCV
}

func (m *MOG2Model) Close() error {
	return nil
}

// YOLODetector заглушка детектора людей.
type YOLODetector struct{}

// NewYOLODetector возвращает ошибку, если сборка без тега gocv.
func NewYOLODetector(modelPath string) (*YOLODetector, error) {
	_ = modelPath
	return nil, errNoGoCV
}

func (d *YOLODetector) Ready() bool {
	return false
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Detect(ctx context.Context, frame *entity.Frame, opts entity.DetectOptions) (*entity.DetectionResult, error) {
	return nil, errNoGoCV
}

// Annotate возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Annotate(frame *entity.Frame, result *entity.DetectionResult) (*entity.Frame, error) {
	return nil, errNoGoCV
}

func (d *YOLODetector) Close() error {
	return nil
}
