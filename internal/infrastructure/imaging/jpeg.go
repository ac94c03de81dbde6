package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

const (
	DefaultQuality  = 90
	DefaultMaxWidth = 1280
)

// JPEGEncoder кодирует BGR-кадр в JPEG для Telegram и веб-интерфейса.
// Широкие кадры уменьшаются до MaxWidth с сохранением пропорций.
type JPEGEncoder struct {
	Quality  int
	MaxWidth int
}

func NewJPEGEncoder(quality, maxWidth int) *JPEGEncoder {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &JPEGEncoder{Quality: quality, MaxWidth: maxWidth}
}

// Encode превращает кадр в JPEG.
func (e *JPEGEncoder) Encode(frame *entity.Frame) ([]byte, error) {
	img, err := ToImage(frame)
	if err != nil {
		return nil, err
	}

	if img.Bounds().Dx() > e.MaxWidth {
		img = downscale(img, e.MaxWidth)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// ToImage переводит BGR/серый кадр в image.Image.
func ToImage(frame *entity.Frame) (image.Image, error) {
	if !frame.Valid() {
		return nil, errors.New("invalid frame")
	}

	rect := image.Rect(0, 0, frame.Width, frame.Height)
	switch frame.Channels {
	case 1:
		img := image.NewGray(rect)
		copy(img.Pix, frame.Data)
		return img, nil
	case 3, 4:
		img := image.NewRGBA(rect)
		ch := frame.Channels
		for i, j := 0, 0; i < len(frame.Data); i, j = i+ch, j+4 {
			img.Pix[j] = frame.Data[i+2]
			img.Pix[j+1] = frame.Data[i+1]
			img.Pix[j+2] = frame.Data[i]
			img.Pix[j+3] = 0xff
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported channel count %d", frame.Channels)
	}
}

func downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	return dst
}

var _ port.FrameEncoder = (*JPEGEncoder)(nil)
