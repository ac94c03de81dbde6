package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrCaptureFailure камера недоступна или кадр не прочитан
	ErrCaptureFailure = errors.New("capture failure")
	// ErrConfiguration недопустимые параметры запуска
	ErrConfiguration = errors.New("invalid configuration")
)

// CaptureError ошибка захвата кадра. Фатальна для текущего запуска.
type CaptureError struct {
	Op  string // open, read, reopen, apply
	Err error
}

// NewCaptureError оборачивает причину в CaptureError
func NewCaptureError(op string, err error) *CaptureError {
	return &CaptureError{Op: op, Err: err}
}

func (e *CaptureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("capture failure: %s", e.Op)
	}
	return fmt.Sprintf("capture failure: %s: %v", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// Is позволяет errors.Is(err, ErrCaptureFailure)
func (e *CaptureError) Is(target error) bool {
	return target == ErrCaptureFailure
}

// ConfigurationError ошибка в ControllerConfig
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
