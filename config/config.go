package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"sentry-bot/internal/domain/entity"
)

type Config struct {
	TelegramToken string   `yaml:"telegram_token"`
	HTTPAddr      string   `yaml:"http_addr"`
	CameraDevice  string   `yaml:"camera_device"`
	ModelPath     string   `yaml:"model_path"`
	AutoStart     bool     `yaml:"auto_start"`
	Notifiers     []string `yaml:"notifiers"`

	JPEGQuality     int `yaml:"jpeg_quality"`
	PreviewMaxWidth int `yaml:"preview_max_width"`

	MotionThreshold int           `yaml:"motion_threshold"`
	PersonClassID   int           `yaml:"person_class_id"`
	MinConfidence   float64       `yaml:"min_confidence"`
	InputSize       int           `yaml:"input_size"`
	CycleInterval   time.Duration `yaml:"-"` // cycle_interval разбирается в UnmarshalYAML
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		CameraDevice:    "0",
		ModelPath:       "yolov5s.onnx",
		Notifiers:       []string{"beep", "telegram"},
		JPEGQuality:     90,
		PreviewMaxWidth: 1280,
		MotionThreshold: entity.DefaultMotionPixelThreshold,
		PersonClassID:   entity.DefaultPersonClassID,
		MinConfidence:   entity.DefaultMinConfidence,
		InputSize:       entity.DefaultInputSize,
		CycleInterval:   entity.DefaultCycleInterval,
	}
}

// Load читает YAML-файл из SENTRY_CONFIG_FILE (если задан), затем .env
// и переменные окружения. Окружение перекрывает файл.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("SENTRY_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	env := &envReader{}
	cfg.TelegramToken = env.String("TELEGRAM_TOKEN", cfg.TelegramToken)
	cfg.HTTPAddr = env.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.CameraDevice = env.String("CAMERA_DEVICE", cfg.CameraDevice)
	cfg.ModelPath = env.String("MODEL_PATH", cfg.ModelPath)
	cfg.AutoStart = env.Bool("AUTO_START", cfg.AutoStart)
	cfg.Notifiers = env.List("ALERT_NOTIFIERS", cfg.Notifiers)
	cfg.JPEGQuality = env.Int("JPEG_QUALITY", cfg.JPEGQuality)
	cfg.PreviewMaxWidth = env.Int("PREVIEW_MAX_WIDTH", cfg.PreviewMaxWidth)
	cfg.MotionThreshold = env.Int("MOTION_THRESHOLD", cfg.MotionThreshold)
	cfg.PersonClassID = env.Int("PERSON_CLASS_ID", cfg.PersonClassID)
	cfg.MinConfidence = env.Float("MIN_CONFIDENCE", cfg.MinConfidence)
	cfg.InputSize = env.Int("INPUT_SIZE", cfg.InputSize)
	cfg.CycleInterval = env.Duration("CYCLE_INTERVAL", cfg.CycleInterval)
	if err := env.Err(); err != nil {
		return nil, err
	}

	if err := cfg.Controller().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Controller параметры рабочего цикла
func (c *Config) Controller() entity.ControllerConfig {
	return entity.ControllerConfig{
		MotionPixelThreshold: c.MotionThreshold,
		PersonClassID:        c.PersonClassID,
		MinConfidence:        float32(c.MinConfidence),
		InputSize:            c.InputSize,
		CycleInterval:        c.CycleInterval,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// UnmarshalYAML разбирает cycle_interval так же, как CYCLE_INTERVAL:
// "1s", "500ms" или число секунд.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	if err := value.Decode((*plain)(c)); err != nil {
		return err
	}

	var interval struct {
		CycleInterval *yaml.Node `yaml:"cycle_interval"`
	}
	if err := value.Decode(&interval); err != nil {
		return err
	}
	if interval.CycleInterval == nil {
		return nil
	}

	d, err := parseInterval(interval.CycleInterval.Value)
	if err != nil {
		return &entity.ConfigurationError{
			Field:  "cycle_interval",
			Reason: fmt.Sprintf("%q %v", interval.CycleInterval.Value, err),
		}
	}
	c.CycleInterval = d

	return nil
}

// envReader читает переменные окружения и запоминает ошибки разбора.
// Пустая переменная оставляет значение по умолчанию.
type envReader struct {
	errs []error
}

func (e *envReader) String(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func (e *envReader) Int(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		e.fail(key, v, "is not an integer")
		return defaultVal
	}
	return n
}

func (e *envReader) Float(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		e.fail(key, v, "is not a number")
		return defaultVal
	}
	return f
}

func (e *envReader) Bool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		e.fail(key, v, "is not a boolean")
		return defaultVal
	}
	return b
}

func (e *envReader) Duration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := parseInterval(v)
	if err != nil {
		e.fail(key, v, err.Error())
		return defaultVal
	}
	return d
}

func (e *envReader) List(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (e *envReader) fail(key, value, reason string) {
	e.errs = append(e.errs, &entity.ConfigurationError{
		Field:  key,
		Reason: fmt.Sprintf("%q %s", value, reason),
	})
}

// Err возвращает все ошибки разбора разом
func (e *envReader) Err() error {
	return errors.Join(e.errs...)
}

// parseInterval принимает "1s", "500ms" или число секунд ("1.5")
func parseInterval(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New("is not a duration")
	}
	return time.Duration(secs * float64(time.Second)), nil
}
