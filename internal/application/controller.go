package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

const (
	StatusIdle             = "idle"
	StatusStarted          = "started, waiting for motion"
	StatusWaitingForMotion = "waiting for motion"
	StatusMotionDetected   = "motion detected"
	StatusPersonDetected   = "person detected"
	StatusNoPerson         = "no person, reverting to motion watch"
	StatusStopped          = "stopped"
)

const notifyTimeout = 15 * time.Second

// ErrAlreadyRunning второй запуск при работающем цикле отклоняется
var ErrAlreadyRunning = errors.New("controller is already running")

// ModeController конечный автомат "ждём движение" / "ищем человека".
// Держит единственный рабочий цикл и сам источник кадров.
type ModeController struct {
	source   port.FrameSource
	model    port.BackgroundModel
	detector port.PersonDetector
	board    *ResultBoard
	notifier port.Notifier
	metrics  port.Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// run состояние одного запуска, принадлежит рабочей горутине
type run struct {
	id     string
	cfg    entity.ControllerConfig
	motion *MotionDetector
	mode   entity.Mode
	alert  bool
	cycle  uint64
}

// NewModeController собирает контроллер. notifier и metrics могут быть nil.
func NewModeController(
	source port.FrameSource,
	model port.BackgroundModel,
	detector port.PersonDetector,
	board *ResultBoard,
	notifier port.Notifier,
	metrics port.Metrics,
) *ModeController {
	if board == nil {
		board = NewResultBoard()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &ModeController{
		source:   source,
		model:    model,
		detector: detector,
		board:    board,
		notifier: notifier,
		metrics:  metrics,
	}
}

// Start проверяет конфигурацию, открывает камеру и запускает рабочий цикл.
func (c *ModeController) Start(ctx context.Context, cfg entity.ControllerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		select {
		case <-c.done:
			// Прошлый запуск завершился сам, после сбоя захвата
			c.done = nil
			c.cancel = nil
		default:
			return ErrAlreadyRunning
		}
	}

	if err := c.source.Open(ctx); err != nil {
		err = captureError("open", err)
		c.board.Publish(entity.Snapshot{Status: err.Error(), Mode: entity.ModeMotionWatch})
		c.metrics.ObserveCaptureFailure()
		return err
	}

	r := &run{
		id:     uuid.NewString(),
		cfg:    cfg,
		motion: NewMotionDetector(c.model, cfg.MotionPixelThreshold),
		mode:   entity.ModeMotionWatch,
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.done = make(chan struct{})

	c.publish(r, StatusStarted, nil)
	c.metrics.SetRunning(true)
	log.Printf("Watch %s started: threshold=%d class=%d interval=%s", r.id, cfg.MotionPixelThreshold, cfg.PersonClassID, cfg.CycleInterval)

	go c.loop(runCtx, r, c.done)

	return nil
}

// Stop останавливает цикл и дожидается освобождения камеры.
// Повторный вызов ничего не делает.
func (c *ModeController) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done == nil {
		return nil
	}

	select {
	case <-c.done:
		// Цикл уже остановился из-за сбоя, статус сбоя оставляем
		c.done = nil
		c.cancel = nil
		return nil
	default:
	}

	c.cancel()
	<-c.done
	c.done = nil
	c.cancel = nil

	c.board.Clear(StatusStopped)
	c.metrics.SetAlert(false)
	log.Println("Watch stopped")

	return nil
}

// Running сообщает, крутится ли рабочий цикл
func (c *ModeController) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Status возвращает текущий снимок доски
func (c *ModeController) Status() entity.Snapshot {
	return c.board.Snapshot()
}

// Mode возвращает текущий режим
func (c *ModeController) Mode() entity.Mode {
	return c.board.Snapshot().Mode
}

// Board возвращает доску результатов для слоя показа
func (c *ModeController) Board() *ResultBoard {
	return c.board
}

func (c *ModeController) loop(ctx context.Context, r *run, done chan struct{}) {
	defer close(done)
	defer c.metrics.SetRunning(false)
	defer func() {
		if err := c.source.Close(); err != nil {
			log.Printf("Error closing frame source: %v", err)
		}
	}()

	timer := time.NewTimer(r.cfg.CycleInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := c.cycle(ctx, r); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.fail(r, err)
			return
		}

		timer.Reset(r.cfg.CycleInterval)
	}
}

// cycle один проход: кадр, оценка, возможный переход, публикация.
func (c *ModeController) cycle(ctx context.Context, r *run) error {
	started := time.Now()
	mode := r.mode
	defer func() { c.metrics.ObserveCycle(mode, time.Since(started)) }()

	frame, err := c.source.Read(ctx)
	if err != nil {
		return captureError("read", err)
	}
	r.cycle++

	switch r.mode {
	case entity.ModeMotionWatch:
		return c.watchMotion(ctx, r, frame)
	case entity.ModePersonWatch:
		return c.watchPerson(ctx, r, frame)
	default:
		return errors.New("unknown mode " + string(r.mode))
	}
}

func (c *ModeController) watchMotion(ctx context.Context, r *run, frame *entity.Frame) error {
	moved, err := r.motion.Observe(frame)
	if err != nil {
		return err
	}

	if !moved {
		c.publish(r, StatusWaitingForMotion, frame)
		return nil
	}

	log.Printf("Watch %s: motion above %d pixels", r.id, r.motion.Threshold())
	if err := c.reacquire(ctx); err != nil {
		return err
	}
	c.transition(r, entity.ModePersonWatch)
	c.publish(r, StatusMotionDetected, frame)

	return nil
}

func (c *ModeController) watchPerson(ctx context.Context, r *run, frame *entity.Frame) error {
	result, err := c.detector.Detect(ctx, frame, r.cfg.DetectOptions())
	if err != nil {
		if errors.Is(err, entity.ErrCaptureFailure) {
			return err
		}
		// Сбой инференса не фатален: режим сохраняем, пробуем в следующем цикле
		log.Printf("Error detecting person: %v", err)
		c.publish(r, "person detection failed: "+err.Error(), frame)
		return nil
	}
	c.metrics.ObserveDetections(len(result.Boxes))

	if result.Empty() {
		if err := c.reacquire(ctx); err != nil {
			return err
		}
		r.alert = false
		c.transition(r, entity.ModeMotionWatch)
		c.publish(r, StatusNoPerson, frame)
		return nil
	}

	annotated, err := c.detector.Annotate(frame, result)
	if err != nil {
		log.Printf("Error annotating frame: %v", err)
		annotated = frame
	}

	raised := !r.alert
	r.alert = true
	snapshot := c.publish(r, StatusPersonDetected, annotated)
	if raised {
		log.Printf("Person detected: %d box(es)", len(result.Boxes))
		c.notify(snapshot)
	}

	return nil
}

// reacquire закрывает поток и открывает новый, чтобы не читать старые буферы.
func (c *ModeController) reacquire(ctx context.Context) error {
	if err := c.source.Close(); err != nil {
		return captureError("reopen", err)
	}
	if err := c.source.Open(ctx); err != nil {
		return captureError("reopen", err)
	}
	return nil
}

func (c *ModeController) transition(r *run, next entity.Mode) {
	log.Printf("Watch %s: %s -> %s", r.id, r.mode, next)
	c.metrics.ObserveTransition(r.mode, next)
	r.mode = next
}

func (c *ModeController) publish(r *run, status string, frame *entity.Frame) entity.Snapshot {
	s := entity.Snapshot{
		Status:    status,
		Frame:     frame,
		Alert:     r.alert,
		Mode:      r.mode,
		Cycle:     r.cycle,
		RunID:     r.id,
		Running:   true,
		UpdatedAt: time.Now(),
	}
	c.board.Publish(s)
	c.metrics.SetAlert(r.alert)

	return s
}

func (c *ModeController) fail(r *run, err error) {
	log.Printf("Watch %s stopped on error: %v", r.id, err)
	c.metrics.ObserveCaptureFailure()
	c.metrics.SetAlert(false)

	c.board.Publish(entity.Snapshot{
		Status:    err.Error(),
		Mode:      r.mode,
		Cycle:     r.cycle,
		RunID:     r.id,
		Running:   false,
		UpdatedAt: time.Now(),
	})
}

// notify отправляет тревогу без ожидания результата
func (c *ModeController) notify(s entity.Snapshot) {
	if c.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := c.notifier.Notify(ctx, s); err != nil {
			log.Printf("Error sending alert: %v", err)
		}
	}()
}

type nopMetrics struct{}

func (nopMetrics) ObserveCycle(entity.Mode, time.Duration) {}
func (nopMetrics) ObserveTransition(entity.Mode, entity.Mode) {}
func (nopMetrics) ObserveCaptureFailure() {}
func (nopMetrics) ObserveDetections(int) {}
func (nopMetrics) SetAlert(bool) {}
func (nopMetrics) SetRunning(bool) {}
