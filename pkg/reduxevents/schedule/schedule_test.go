package schedule_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtual_ZeroDelayIsDeferred(t *testing.T) {
	clock := schedule.NewVirtual()

	ran := false
	clock.Schedule(func() { ran = true }, 0)

	assert.False(t, ran, "callback must not run on the scheduling call stack")
	assert.Equal(t, 1, clock.Pending())

	assert.Equal(t, 1, clock.RunPending())
	assert.True(t, ran)
	assert.Equal(t, 0, clock.Pending())
}

func TestVirtual_OrdersByDueTimeThenFIFO(t *testing.T) {
	clock := schedule.NewVirtual()

	var order []string
	clock.Schedule(func() { order = append(order, "late") }, 20*time.Millisecond)
	clock.Schedule(func() { order = append(order, "first") }, 0)
	clock.Schedule(func() { order = append(order, "second") }, 0)
	clock.Schedule(func() { order = append(order, "middle") }, 10*time.Millisecond)

	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, order)

	clock.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"first", "second", "middle", "late"}, order)
	assert.Equal(t, 20*time.Millisecond, clock.Now())
}

func TestVirtual_CallbacksScheduledDuringAdvance(t *testing.T) {
	clock := schedule.NewVirtual()

	var order []int
	clock.Schedule(func() {
		order = append(order, 1)
		clock.Schedule(func() { order = append(order, 2) }, 0)
		clock.Schedule(func() { order = append(order, 3) }, time.Second)
	}, 0)

	clock.RunPending()
	assert.Equal(t, []int{1, 2}, order)

	clock.Flush()
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, time.Second, clock.Now())
}

func TestVirtual_Stop(t *testing.T) {
	clock := schedule.NewVirtual()

	ran := false
	timer := clock.Schedule(func() { ran = true }, time.Millisecond)

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports nothing to stop")
	assert.Equal(t, 0, clock.Pending())

	clock.Flush()
	assert.False(t, ran)
}

func TestVirtual_StepLimit(t *testing.T) {
	clock := schedule.NewVirtual()

	var again func()
	again = func() { clock.Schedule(again, 0) }
	clock.Schedule(again, 0)

	assert.Panics(t, func() { clock.Flush() })
}

func TestDebounce_CoalescesToLastArgument(t *testing.T) {
	clock := schedule.NewVirtual()

	var calls []int
	debounced := schedule.Debounce(clock, func(v int) { calls = append(calls, v) }, 300*time.Millisecond)

	debounced(1)
	clock.Advance(100 * time.Millisecond)
	debounced(2)
	clock.Advance(100 * time.Millisecond)
	debounced(3)

	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, calls, "window restarts on every call")

	clock.Advance(time.Millisecond)
	assert.Equal(t, []int{3}, calls)

	debounced(4)
	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, []int{3, 4}, calls)
}

func TestLoop_RunsCallbacksSerially(t *testing.T) {
	loop := schedule.NewLoop()
	defer loop.Close()

	var (
		mu      sync.Mutex
		order   []int
		running atomic.Int32
		overlap atomic.Bool
	)

	for i := 0; i < 50; i++ {
		i := i
		loop.Schedule(func() {
			if running.Add(1) > 1 {
				overlap.Store(true)
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			running.Add(-1)
		}, 0)
	}

	loop.Barrier()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 50)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
	assert.False(t, overlap.Load())
}

func TestLoop_DelayedCallback(t *testing.T) {
	loop := schedule.NewLoop()
	defer loop.Close()

	done := make(chan struct{})
	loop.Schedule(func() { close(done) }, 10*time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("delayed callback did not run")
	}
}

func TestLoop_StopDelayedCallback(t *testing.T) {
	loop := schedule.NewLoop()
	defer loop.Close()

	var ran atomic.Bool
	timer := loop.Schedule(func() { ran.Store(true) }, 20*time.Millisecond)
	assert.True(t, timer.Stop())

	time.Sleep(50 * time.Millisecond)
	loop.Barrier()
	assert.False(t, ran.Load())
}

func TestLoop_RecoversPanics(t *testing.T) {
	loop := schedule.NewLoop()
	defer loop.Close()

	var ran atomic.Bool
	loop.Schedule(func() { panic("boom") }, 0)
	loop.Schedule(func() { ran.Store(true) }, 0)

	loop.Barrier()
	assert.True(t, ran.Load(), "loop keeps running after a panicking callback")
}

func TestLoop_ScheduleAfterClose(t *testing.T) {
	loop := schedule.NewLoop()
	require.NoError(t, loop.Close())
	require.NoError(t, loop.Close())

	timer := loop.Schedule(func() {}, 0)
	assert.False(t, timer.Stop())
	loop.Barrier()
}
