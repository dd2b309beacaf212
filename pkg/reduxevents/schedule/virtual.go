package schedule

import (
	"container/heap"
	"sync"
	"time"
)

// maxSteps bounds a single Advance or Flush so a callback that keeps
// rescheduling itself fails loudly instead of hanging a test.
const maxSteps = 100000

// Virtual is a Scheduler driven by a virtual clock.
// Nothing runs until the caller advances the clock, and callbacks always
// run on the goroutine calling Advance, RunPending or Flush.
//
// Example:
//
//	clock := schedule.NewVirtual()
//	clock.Schedule(func() { fmt.Println("later") }, 0)
//	clock.RunPending() // prints "later"
type Virtual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks taskHeap
}

// NewVirtual creates a virtual clock at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Schedule implements Scheduler.
func (v *Virtual) Schedule(fn func(), delay time.Duration) Timer {
	if delay < 0 {
		delay = 0
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	vt := &virtualTask{due: v.now + delay, seq: v.seq}
	vt.fn = fn
	heap.Push(&v.tasks, vt)
	return &vt.task
}

// Now returns the elapsed virtual time.
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Pending returns the number of callbacks that have not run or been stopped.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	n := 0
	for _, vt := range v.tasks {
		if vt.state.Load() == taskPending {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that
// becomes due, including callbacks scheduled by callbacks within the
// window. Returns the number of callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	v.mu.Lock()
	target := v.now + d
	v.mu.Unlock()

	ran := v.runUntil(func(due time.Duration) bool { return due <= target })

	v.mu.Lock()
	if v.now < target {
		v.now = target
	}
	v.mu.Unlock()
	return ran
}

// RunPending runs every callback due at the current virtual time.
// This is the equivalent of letting the current turn finish.
func (v *Virtual) RunPending() int {
	return v.Advance(0)
}

// Flush runs callbacks until none are left, moving the clock to each
// callback's due time.
func (v *Virtual) Flush() int {
	return v.runUntil(func(time.Duration) bool { return true })
}

func (v *Virtual) runUntil(ok func(due time.Duration) bool) int {
	ran := 0
	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			panic("schedule: virtual clock exceeded step limit, callbacks keep rescheduling")
		}

		v.mu.Lock()
		if len(v.tasks) == 0 || !ok(v.tasks[0].due) {
			v.mu.Unlock()
			return ran
		}
		vt := heap.Pop(&v.tasks).(*virtualTask)
		if vt.due > v.now {
			v.now = vt.due
		}
		v.mu.Unlock()

		if vt.claim() {
			vt.fn()
			ran++
		}
	}
}

type virtualTask struct {
	task
	due time.Duration
	seq uint64
}

// taskHeap orders tasks by due time, then by scheduling order.
type taskHeap []*virtualTask

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(*virtualTask)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
