package async

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/hinstaller/internal/messages"
)

// Presenter runs closures on the presentation goroutine.
type Presenter interface {
	Dispatch(fn func())
}

// Immediate runs closures on the calling goroutine.
// It suits tests and hosts that are already single-threaded.
type Immediate struct{}

// Dispatch runs fn right away.
func (Immediate) Dispatch(fn func()) {
	if fn != nil {
		fn()
	}
}

// Loop is an unbounded FIFO of closures drained by a single goroutine.
type Loop struct {
	log log.FieldLogger

	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	ran     atomic.Bool
	stopped bool // only touched by the Run goroutine
	done    chan struct{}
}

// NewLoop returns a Loop that logs closure panics through logger.
func NewLoop(logger log.FieldLogger) *Loop {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Loop{
		log:  logger,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Dispatch queues fn without blocking. Safe from any goroutine.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Stop ends Run after every closure queued before it has executed.
func (l *Loop) Stop() {
	l.Dispatch(func() { l.stopped = true })
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run executes queued closures on the calling goroutine until Stop or ctx cancellation.
// It returns nil after Stop and ctx.Err() after cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if !l.ran.CompareAndSwap(false, true) {
		return errors.New(messages.AsyncLoopAlreadyRan)
	}
	defer close(l.done)
	for {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			l.invoke(fn)
			if l.stopped {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("panic", r).WithField("stack", string(debug.Stack())).Error(messages.AsyncClosurePanicked)
		}
	}()
	fn()
}
