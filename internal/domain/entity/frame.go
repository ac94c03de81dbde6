package entity

import "time"

// Frame кадр с камеры в формате BGR, строки подряд.
// После создания кадр не изменяется: аннотация делает копию.
type Frame struct {
	Width      int       // ширина в пикселях
	Height     int       // высота в пикселях
	Channels   int       // число каналов (3 для BGR)
	Data       []byte    // пиксели, len = Width*Height*Channels
	CapturedAt time.Time // момент захвата
}

// NewFrame создаёт пустой кадр заданного размера.
func NewFrame(width, height, channels int) *Frame {
	return &Frame{
		Width:      width,
		Height:     height,
		Channels:   channels,
		Data:       make([]byte, width*height*channels),
		CapturedAt: time.Now(),
	}
}

// Empty сообщает, что кадр не содержит пикселей.
func (f *Frame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0 || len(f.Data) == 0
}

// Valid проверяет, что размер буфера совпадает с геометрией кадра.
func (f *Frame) Valid() bool {
	return !f.Empty() && f.Channels > 0 && len(f.Data) == f.Width*f.Height*f.Channels
}

// Clone возвращает независимую копию кадра.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	return &Frame{
		Width:      f.Width,
		Height:     f.Height,
		Channels:   f.Channels,
		Data:       data,
		CapturedAt: f.CapturedAt,
	}
}
