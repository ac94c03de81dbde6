//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"sentry-bot/internal/domain/entity"
)

// frameToMat превращает кадр в gocv.Mat. Mat нужно закрыть.
func frameToMat(frame *entity.Frame) (gocv.Mat, error) {
	if !frame.Valid() {
		return gocv.NewMat(), errors.New("invalid frame")
	}

	var matType gocv.MatType
	switch frame.Channels {
	case 1:
		matType = gocv.MatTypeCV8UC1
	case 3:
		matType = gocv.MatTypeCV8UC3
	case 4:
		matType = gocv.MatTypeCV8UC4
	default:
		return gocv.NewMat(), fmt.Errorf("unsupported channel count %d", frame.Channels)
	}

	return gocv.NewMatFromBytes(frame.Height, frame.Width, matType, frame.Data)
}

// matToFrame копирует пиксели из gocv.Mat в новый кадр.
func matToFrame(mat gocv.Mat, capturedAt time.Time) (*entity.Frame, error) {
	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	return &entity.Frame{
		Width:      mat.Cols(),
		Height:     mat.Rows(),
		Channels:   mat.Channels(),
		Data:       mat.ToBytes(),
		CapturedAt: capturedAt,
	}, nil
}
