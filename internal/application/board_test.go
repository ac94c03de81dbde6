package app

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"sentry-bot/internal/domain/entity"
)

func TestResultBoard_InitialState(t *testing.T) {
	b := NewResultBoard()
	s := b.Snapshot()
	require.Equal(t, StatusIdle, s.Status)
	require.False(t, s.Alert)
	require.False(t, s.HasFrame())
}

func TestResultBoard_ClearDropsFrameAndAlert(t *testing.T) {
	b := NewResultBoard()
	b.Publish(entity.Snapshot{Status: StatusPersonDetected, Frame: entity.NewFrame(2, 2, 3), Alert: true})

	b.Clear(StatusStopped)
	s := b.Snapshot()
	require.Equal(t, StatusStopped, s.Status)
	require.False(t, s.Alert)
	require.Nil(t, s.Frame)
}

func TestResultBoard_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	b := NewResultBoard()
	const writes = 2000

	var wg sync.WaitGroup
	errs := make(chan string, 8)

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				s := b.Snapshot()
				if s.Cycle == 0 {
					continue
				}
				if s.Status != strconv.FormatUint(s.Cycle, 10) ||
					s.Frame == nil || uint64(s.Frame.Width) != s.Cycle ||
					s.Alert != (s.Cycle%2 == 0) {
					errs <- fmt.Sprintf("torn snapshot: %+v", s)
					return
				}
			}
		}()
	}

	for i := uint64(1); i <= writes; i++ {
		b.Publish(entity.Snapshot{
			Status: strconv.FormatUint(i, 10),
			Frame:  entity.NewFrame(int(i), 1, 1),
			Alert:  i%2 == 0,
			Cycle:  i,
		})
	}

	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
	require.Equal(t, uint64(writes), b.Snapshot().Cycle)
}

func TestResultBoard_SubscriberGetsLatest(t *testing.T) {
	b := NewResultBoard()

	ch, err := b.Subscribe("ws-1")
	require.NoError(t, err)

	_, err = b.Subscribe("ws-1")
	require.ErrorIs(t, err, ErrSubscriberExists)

	// Медленный читатель: старые снимки выбрасываются
	for i := uint64(1); i <= 3; i++ {
		b.Publish(entity.Snapshot{Status: "s", Cycle: i})
	}

	got := <-ch
	require.Equal(t, uint64(3), got.Cycle)

	require.NoError(t, b.Unsubscribe("ws-1"))
	_, open := <-ch
	require.False(t, open)
	require.ErrorIs(t, b.Unsubscribe("ws-1"), ErrSubscriberNotFound)
}
