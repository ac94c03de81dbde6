package app

import (
	"context"
	"errors"
	"sync"

	"sentry-bot/internal/domain/entity"
)

// fakeSource считает открытия и закрытия и проверяет, что Close не идёт параллельно Read.
type fakeSource struct {
	mu         sync.Mutex
	opened     bool
	opens      int
	closes     int
	reads      int
	reading    bool
	overlapped bool

	failReadAt int           // номер чтения, на котором вернуть ошибку (0 = никогда)
	failOpen   error         // ошибка для Open
	failOpenAt int           // номер открытия, начиная с которого Open падает (0 = никогда)
	block      chan struct{} // если задан, Read ждёт его или отмены контекста
}

func (s *fakeSource) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOpen != nil {
		return s.failOpen
	}
	if s.failOpenAt > 0 && s.opens+1 >= s.failOpenAt {
		return errors.New("device disappeared")
	}
	if s.opened {
		s.closes++
	}
	s.opened = true
	s.opens++
	return nil
}

func (s *fakeSource) Read(ctx context.Context) (*entity.Frame, error) {
	s.mu.Lock()
	if !s.opened {
		s.mu.Unlock()
		return nil, entity.NewCaptureError("read", errors.New("device is not open"))
	}
	s.reads++
	n := s.reads
	s.reading = true
	block := s.block
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.reading = false
		s.mu.Unlock()
	}()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if s.failReadAt > 0 && n >= s.failReadAt {
		return nil, errors.New("camera unplugged")
	}

	return entity.NewFrame(8, 6, 3), nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reading {
		s.overlapped = true
	}
	if !s.opened {
		return nil
	}
	s.opened = false
	s.closes++
	return nil
}

func (s *fakeSource) counts() (opens, closes, reads int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens, s.closes, s.reads
}

// scriptedModel отдаёт заранее заданные значения переднего плана,
// последнее повторяется.
type scriptedModel struct {
	mu     sync.Mutex
	counts []int
	calls  int
	err    error
}

func (m *scriptedModel) Apply(frame *entity.Frame) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	if len(m.counts) == 0 {
		return 0, nil
	}
	i := m.calls - 1
	if i >= len(m.counts) {
		i = len(m.counts) - 1
	}
	return m.counts[i], nil
}

func (m *scriptedModel) applied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// scriptedDetector отдаёт заранее заданные результаты, последний повторяется.
type scriptedDetector struct {
	mu       sync.Mutex
	results  [][]entity.BoundingBox
	calls    int
	lastOpts entity.DetectOptions
	err      error
}

func (d *scriptedDetector) Detect(ctx context.Context, frame *entity.Frame, opts entity.DetectOptions) (*entity.DetectionResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls++
	d.lastOpts = opts
	if d.err != nil {
		return nil, d.err
	}
	if len(d.results) == 0 {
		return &entity.DetectionResult{}, nil
	}
	i := d.calls - 1
	if i >= len(d.results) {
		i = len(d.results) - 1
	}
	return &entity.DetectionResult{Boxes: d.results[i]}, nil
}

func (d *scriptedDetector) Annotate(frame *entity.Frame, result *entity.DetectionResult) (*entity.Frame, error) {
	out := frame.Clone()
	out.Data[0] = 255
	return out, nil
}

type recordingNotifier struct {
	ch chan entity.Snapshot
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan entity.Snapshot, 16)}
}

func (n *recordingNotifier) Notify(ctx context.Context, s entity.Snapshot) error {
	n.ch <- s
	return nil
}

var personBox = entity.BoundingBox{X1: 1, Y1: 1, X2: 5, Y2: 5, ClassID: 0, Label: "person", Confidence: 0.9}
