package schedule

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Task states.
const (
	taskPending int32 = iota
	taskRan
	taskStopped
)

// task is a callback queued on a scheduler.
type task struct {
	fn    func()
	state atomic.Int32
	timer *time.Timer // nil for zero-delay tasks
}

// claim transitions the task to ran. Returns false if it was stopped.
func (t *task) claim() bool {
	return t.state.CompareAndSwap(taskPending, taskRan)
}

// Stop implements Timer.
func (t *task) Stop() bool {
	if !t.state.CompareAndSwap(taskPending, taskStopped) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

// stoppedTimer is returned when scheduling on a closed loop.
type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the logger used to report recovered callback panics.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop is a single-goroutine run loop. Callbacks run one at a time in
// the order they become due, so code running on the loop never races
// with other code running on the loop.
type Loop struct {
	logger *slog.Logger

	mu    sync.Mutex
	queue []*task

	wake      chan struct{}
	done      chan struct{}
	exited    chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewLoop starts a new run loop. Call Close to stop it.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		logger: slog.Default(),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	go l.run()
	return l
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(fn func(), delay time.Duration) Timer {
	if l.closed.Load() {
		return stoppedTimer{}
	}

	t := &task{fn: fn}
	if delay <= 0 {
		l.enqueue(t)
		return t
	}

	t.timer = time.AfterFunc(delay, func() {
		l.enqueue(t)
	})
	return t
}

// Barrier blocks until every callback queued before the call has run.
// Timers that have not fired yet are not waited for.
// Must not be called from a callback running on the loop.
func (l *Loop) Barrier() {
	if l.closed.Load() {
		return
	}
	reached := make(chan struct{})
	l.Schedule(func() { close(reached) }, 0)

	select {
	case <-reached:
	case <-l.exited:
	}
}

// Close stops the loop. Callbacks still queued are dropped.
func (l *Loop) Close() error {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
		<-l.exited
	})
	return nil
}

func (l *Loop) enqueue(t *task) {
	l.mu.Lock()
	l.queue = append(l.queue, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.exited)

	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			t := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			select {
			case <-l.done:
				return
			default:
			}

			if t.claim() {
				l.execute(t.fn)
			}
		}
	}
}

// execute runs fn, recovering panics so one bad callback does not take
// the loop down.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("scheduled callback panicked",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	fn()
}
