package vision

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReleasePrevious_LogsError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	calls := 0
	releasePrevious("/dev/video0", func() error {
		calls++
		return errors.New("device busy")
	})

	require.Equal(t, 1, calls)
	require.Contains(t, buf.String(), "/dev/video0")
	require.Contains(t, buf.String(), "device busy")
}

func TestReleasePrevious_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	releasePrevious("0", func() error { return nil })
	require.Empty(t, buf.String())
}
