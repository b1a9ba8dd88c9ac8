package fiberjobs

import "sync/atomic"

// Counter is an atomic completion barrier. Callers initialize it to the exact
// number of jobs that must complete before dependents may proceed; each executed
// job that carries a reference to it decrements it by one on return.
//
// Counter is the only object the scheduler's wait calls accept: jobs are waited
// for through a Counter, never through the scheduler's own locks.
type Counter struct {
	v     atomic.Int32
	freed atomic.Bool
}

// Store sets the counter's value. Callers use this once, before kicking any job
// that references the counter.
func (c *Counter) Store(n int32) {
	c.v.Store(n)
}

// Load reads the current value with acquire-equivalent ordering (Go's
// atomic.Int32.Load is already sequentially consistent at the instruction level).
func (c *Counter) Load() int32 {
	return c.v.Load()
}

func (c *Counter) dec() {
	c.v.Add(-1)
}

// FreeHook, if non-nil, is invoked by WaitForCounterAndFree once a counter's wait
// has resolved and it has been marked released. It exists so tests can observe
// the "AndFree" release the way the reference validates it via an allocator hook.
var FreeHook func(*Counter)

func (c *Counter) release() {
	if !c.freed.CompareAndSwap(false, true) {
		panic("fiberjobs: counter released more than once")
	}
	if FreeHook != nil {
		FreeHook(c)
	}
}

// Released reports whether WaitForCounterAndFree has already released this counter.
func (c *Counter) Released() bool {
	return c.freed.Load()
}
