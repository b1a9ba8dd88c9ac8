package fiberjobs

// JobFunc is a job's entry point: an opaque argument in, nothing out. ctx is the
// handle through which the job may call WaitForCounter / WaitForCounterAndFree;
// Go has no ambient "current fiber" to recover from thread-local state, so the
// context is passed explicitly instead.
type JobFunc func(ctx *JobContext, arg any)

// Job is an immovable work description: an entry point, its argument, an
// optional counter to decrement on completion, a priority, and a diagnostic
// name. Submitting a Job with a nil Entry panics (see KickJob).
type Job struct {
	Entry    JobFunc
	Arg      any
	Counter  *Counter
	Priority Priority
	Name     string
}

// JobContext is handed to a running job's entry point and carries the
// main-thread affinity of the pump running the job into its waits. Caller
// code cannot construct one; outside any job, waits go through the
// main-thread context returned by Scheduler.MainThread, as the package-level
// WaitForCounter does.
type JobContext struct {
	sched  *Scheduler
	isMain bool
}

// IsMainThread reports whether the job is currently executing on the
// distinguished main-thread pump.
func (c *JobContext) IsMainThread() bool {
	return c.isMain
}

// WaitForCounter blocks until counter.Load() <= desired, servicing other
// scheduler work while it waits (see Scheduler.waitForCounter).
func (c *JobContext) WaitForCounter(counter *Counter, desired int32) {
	c.sched.waitForCounter(counter, desired, c.isMain)
}

// WaitForCounterAndFree waits as WaitForCounter does, then marks counter
// released and invokes FreeHook if one is installed.
func (c *JobContext) WaitForCounterAndFree(counter *Counter, desired int32) {
	c.sched.waitForCounter(counter, desired, c.isMain)
	counter.release()
}

// RunOnMainThreadAndWait forces entry onto the main thread and blocks until
// it completes: the original's ForceMainThreadExecution (SPEC_FULL.md
// §2.3). If c is already bound to the main pump, entry runs immediately in
// place, matching the original's own early exit ("we are already on the
// main thread -> early exit") instead of paying for a pointless
// KickMainThreadJob + WaitForCounter round trip.
func (c *JobContext) RunOnMainThreadAndWait(entry JobFunc, arg any) {
	if c.isMain {
		entry(c, arg)
		return
	}
	c.sched.runOnMainThreadAndWait(entry, arg)
}
