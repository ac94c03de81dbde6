//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

const nmsThreshold = 0.45

// YOLODetector детектор людей на YOLOv5 в формате ONNX через gocv DNN.
type YOLODetector struct {
	mu  sync.Mutex
	net gocv.Net
}

// NewYOLODetector загружает модель один раз при старте.
func NewYOLODetector(modelPath string) (*YOLODetector, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model %s", modelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("set backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("set target: %w", err)
	}

	return &YOLODetector{net: net}, nil
}

// Ready сообщает, что модель загружена.
func (d *YOLODetector) Ready() bool {
	return d != nil && !d.net.Empty()
}

// Detect прогоняет кадр через сеть и оставляет рамки нужного класса.
func (d *YOLODetector) Detect(ctx context.Context, frame *entity.Frame, opts entity.DetectOptions) (*entity.DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := frameToMat(frame)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	size := opts.InputSize
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	// Выход YOLOv5: [1, N, 5+классы], строка = cx, cy, w, h, objectness, оценки классов
	dims := output.Size()
	if len(dims) != 3 || dims[2] <= 5 {
		return nil, fmt.Errorf("unexpected output shape %v", dims)
	}
	rows, width := dims[1], dims[2]
	if opts.ClassID+5 >= width {
		return nil, fmt.Errorf("class id %d is out of range", opts.ClassID)
	}

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	if len(data) < rows*width {
		return nil, errors.New("truncated output")
	}

	xScale := float32(frame.Width) / float32(size)
	yScale := float32(frame.Height) / float32(size)

	rects := make([]image.Rectangle, 0)
	scores := make([]float32, 0)
	for i := 0; i < rows; i++ {
		row := data[i*width : (i+1)*width]
		objectness := row[4]
		if objectness < opts.MinConfidence {
			continue
		}

		best := bestClass(row[5:])
		if best != opts.ClassID {
			continue
		}
		score := objectness * row[5+best]
		if score < opts.MinConfidence {
			continue
		}

		cx, cy, w, h := row[0], row[1], row[2], row[3]
		left := int((cx - w/2) * xScale)
		top := int((cy - h/2) * yScale)
		rects = append(rects, image.Rect(left, top, left+int(w*xScale), top+int(h*yScale)))
		scores = append(scores, score)
	}

	result := &entity.DetectionResult{}
	if len(rects) == 0 {
		return result, nil
	}

	for _, idx := range gocv.NMSBoxes(rects, scores, opts.MinConfidence, nmsThreshold) {
		r := rects[idx].Intersect(image.Rect(0, 0, frame.Width, frame.Height))
		if r.Empty() {
			continue
		}
		result.Boxes = append(result.Boxes, entity.BoundingBox{
			X1:         r.Min.X,
			Y1:         r.Min.Y,
			X2:         r.Max.X,
			Y2:         r.Max.Y,
			ClassID:    opts.ClassID,
			Label:      classLabel(opts.ClassID),
			Confidence: scores[idx],
		})
	}

	return result, nil
}

// Annotate рисует белые рамки толщиной 2 пикселя на копии кадра.
func (d *YOLODetector) Annotate(frame *entity.Frame, result *entity.DetectionResult) (*entity.Frame, error) {
	mat, err := frameToMat(frame.Clone())
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, box := range result.Boxes {
		gocv.Rectangle(&mat, image.Rect(box.X1, box.Y1, box.X2, box.Y2), white, 2)
	}

	return matToFrame(mat, frame.CapturedAt)
}

func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.net.Close()
}

var _ port.PersonDetector = (*YOLODetector)(nil)
