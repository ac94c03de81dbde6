package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaptureError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("device busy")
	err := fmt.Errorf("cycle: %w", NewCaptureError("read", cause))

	require.True(t, errors.Is(err, ErrCaptureFailure))
	require.True(t, errors.Is(err, cause))
	require.False(t, errors.Is(err, ErrConfiguration))
	require.Contains(t, err.Error(), "capture failure: read: device busy")
}
