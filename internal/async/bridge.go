package async

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/hinstaller/internal/messages"
)

// Task is a unit of blocking work.
type Task func(ctx context.Context) error

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Task  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf(messages.AsyncTaskPanicFmt, e.Task, e.Value)
}

// IsPanic reports whether err came from a recovered panic.
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// Bridge starts background tasks and keeps their failures from escaping.
type Bridge struct {
	log log.FieldLogger
	wg  sync.WaitGroup
}

// NewBridge returns a Bridge logging through logger.
func NewBridge(logger log.FieldLogger) *Bridge {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Bridge{log: logger}
}

// Go runs task on a new goroutine and returns immediately.
// A returned error or recovered panic goes to onFailure when set; otherwise it is logged.
func (b *Bridge) Go(ctx context.Context, name string, task Task, onFailure func(error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		logger := b.log.WithField("task", name)
		logger.Debug(messages.AsyncTaskStarted)

		err := run(ctx, name, task)
		if err == nil {
			logger.Debug(messages.AsyncTaskFinished)
			return
		}
		if onFailure != nil {
			b.report(logger, onFailure, err)
			return
		}
		entry := logger.WithError(err)
		var pe *PanicError
		if errors.As(err, &pe) {
			entry = entry.WithField("stack", string(pe.Stack))
		}
		entry.Error(messages.AsyncTaskFailed)
	}()
}

// Wait blocks until every started task has returned.
func (b *Bridge) Wait() {
	b.wg.Wait()
}

func run(ctx context.Context, name string, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Task: name, Value: r, Stack: debug.Stack()}
		}
	}()
	return task(ctx)
}

// report calls onFailure, logging rather than propagating a panic from the handler itself.
func (b *Bridge) report(logger log.FieldLogger, onFailure func(error), err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithError(err).WithField("panic", r).Error(messages.AsyncTaskFailed)
		}
	}()
	onFailure(err)
}
