package fiberjobs

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a brief mutual-exclusion lock for short critical sections: queue
// push/pop, pool acquire/release, schedule-list and wait-list access. It spins
// with test-and-set rather than blocking a goroutine on a futex, since Go exposes
// no portable futex-wait primitive and the sections it guards are short.
type SpinLock struct {
	locked atomic.Bool
}

// Lock spins until the lock is acquired.
func (l *SpinLock) Lock() {
	for !l.locked.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock. Unlock on an unlocked SpinLock is a programmer error
// and is not checked, matching the reference's bare test-and-set lock.
func (l *SpinLock) Unlock() {
	l.locked.Store(false)
}

// WithLock runs fn with the lock held, releasing it on every exit path,
// including a panic inside fn. This is the scoped-guard idiom the reference
// expresses with an RAII wrapper around the raw spin lock.
func (l *SpinLock) WithLock(fn func()) {
	l.Lock()
	defer l.Unlock()
	fn()
}
