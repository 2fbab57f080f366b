package async

import (
	"context"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/hinstaller/internal/messages"
)

func runLoop(t *testing.T, l *Loop) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(context.Background()) }()
	return errCh
}

func waitErr(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not return")
		return nil
	}
}

func TestLoop_RunsInOrderThenStops(t *testing.T) {
	logger, _ := test.NewNullLogger()
	l := NewLoop(logger)
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Dispatch(func() { got = append(got, i) })
	}
	l.Stop()
	l.Dispatch(func() { got = append(got, 99) })

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	select {
	case <-l.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestLoop_ConcurrentDispatchSerialized(t *testing.T) {
	logger, _ := test.NewNullLogger()
	l := NewLoop(logger)
	errCh := runLoop(t, l)

	const workers, perWorker = 8, 50
	counter := 0 // mutated only on the loop goroutine
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				l.Dispatch(func() { counter++ })
			}
		}()
	}
	wg.Wait()
	l.Stop()

	require.NoError(t, waitErr(t, errCh))
	assert.Equal(t, workers*perWorker, counter)
}

func TestLoop_ContextCancel(t *testing.T) {
	logger, _ := test.NewNullLogger()
	l := NewLoop(logger)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	cancel()
	assert.ErrorIs(t, waitErr(t, errCh), context.Canceled)
}

func TestLoop_PanicRecovered(t *testing.T) {
	logger, hook := test.NewNullLogger()
	l := NewLoop(logger)
	ran := false
	l.Dispatch(func() { panic("boom") })
	l.Dispatch(func() { ran = true })
	l.Stop()

	require.NoError(t, l.Run(context.Background()))
	assert.True(t, ran)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, messages.AsyncClosurePanicked, hook.LastEntry().Message)
}

func TestLoop_RunOnce(t *testing.T) {
	logger, _ := test.NewNullLogger()
	l := NewLoop(logger)
	l.Stop()
	require.NoError(t, l.Run(context.Background()))

	err := l.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already ran")
}

func TestLoop_NilClosureIgnored(t *testing.T) {
	l := NewLoop(nil)
	l.Dispatch(nil)
	l.Stop()
	assert.NoError(t, l.Run(context.Background()))
}

func TestImmediate(t *testing.T) {
	called := false
	Immediate{}.Dispatch(func() { called = true })
	Immediate{}.Dispatch(nil)
	assert.True(t, called)
}
