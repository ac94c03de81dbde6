package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxCenter(t *testing.T) {
	b := BoundingBox{X1: 10, Y1: 20, X2: 18, Y2: 26}
	x, y := b.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestDetectionResult_First(t *testing.T) {
	var empty *DetectionResult
	require.True(t, empty.Empty())
	_, ok := empty.First()
	require.False(t, ok)

	r := &DetectionResult{Boxes: []BoundingBox{{X1: 1}, {X1: 2}}}
	first, ok := r.First()
	require.True(t, ok)
	require.Equal(t, 1, first.X1)
}

func TestFrame_CloneIsIndependent(t *testing.T) {
	f := NewFrame(2, 2, 3)
	require.True(t, f.Valid())

	c := f.Clone()
	c.Data[0] = 255
	require.Equal(t, byte(0), f.Data[0])
	require.Equal(t, f.Width, c.Width)

	var nilFrame *Frame
	require.True(t, nilFrame.Empty())
	require.Nil(t, nilFrame.Clone())
}
