package entity

import "time"

const (
	DefaultMotionPixelThreshold = 50000
	DefaultPersonClassID        = 0
	DefaultMinConfidence        = 0.25
	DefaultInputSize            = 640
	DefaultCycleInterval        = time.Second
)

// ControllerConfig параметры рабочего цикла. Копируется при запуске
// и дальше не меняется.
type ControllerConfig struct {
	MotionPixelThreshold int           // число пикселей переднего плана, выше которого есть движение
	PersonClassID        int           // класс, который считается человеком
	MinConfidence        float32       // порог уверенности детектора
	InputSize            int           // сторона входа нейросети
	CycleInterval        time.Duration // пауза между циклами
}

// DefaultControllerConfig возвращает значения по умолчанию
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		MotionPixelThreshold: DefaultMotionPixelThreshold,
		PersonClassID:        DefaultPersonClassID,
		MinConfidence:        DefaultMinConfidence,
		InputSize:            DefaultInputSize,
		CycleInterval:        DefaultCycleInterval,
	}
}

// Validate проверяет параметры до старта цикла
func (c ControllerConfig) Validate() error {
	if c.MotionPixelThreshold < 0 {
		return &ConfigurationError{Field: "motion pixel threshold", Reason: "must not be negative"}
	}
	if c.PersonClassID < 0 {
		return &ConfigurationError{Field: "person class id", Reason: "must not be negative"}
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return &ConfigurationError{Field: "min confidence", Reason: "must be within [0, 1]"}
	}
	if c.InputSize <= 0 || c.InputSize%32 != 0 {
		return &ConfigurationError{Field: "input size", Reason: "must be a positive multiple of 32"}
	}
	if c.CycleInterval <= 0 {
		return &ConfigurationError{Field: "cycle interval", Reason: "must be positive"}
	}
	return nil
}

// DetectOptions параметры детектора людей из конфигурации
func (c ControllerConfig) DetectOptions() DetectOptions {
	return DetectOptions{
		ClassID:       c.PersonClassID,
		MinConfidence: c.MinConfidence,
		InputSize:     c.InputSize,
	}
}
