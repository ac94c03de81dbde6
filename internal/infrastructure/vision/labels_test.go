package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestClass(t *testing.T) {
	require.Equal(t, 0, bestClass([]float32{0.9, 0.1, 0.3}))
	require.Equal(t, 2, bestClass([]float32{0.1, 0.2, 0.7}))
	require.Equal(t, 0, bestClass([]float32{0.5, 0.5}))
}

func TestClassLabel(t *testing.T) {
	require.Equal(t, "person", classLabel(0))
	require.Equal(t, "class 2", classLabel(2))
}
