package fiberjobs

import "sync"

// global is the single process-wide Scheduler handle the package-level
// functions below thread through (§9 Design Notes: "wrap them in a
// Scheduler value ... and thread [it] via a single process-global handle").
var (
	globalMu sync.Mutex
	global   *Scheduler
)

// Initialize spawns the process-wide Scheduler. numThreads == 0 is the
// degenerate no-op case from §4.7 step 1: no Scheduler is constructed and no
// threads are spawned. Calling Initialize while already initialized is a
// programmer error (§7: "double-initialize ... is fatal") and panics.
func Initialize(numThreads int) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if numThreads == 0 {
		return
	}
	if global != nil {
		panic("fiberjobs: Initialize called while already initialized")
	}
	global = NewWithConfig(Config{NumThreads: numThreads, NumFibers: DefaultNumFibers})
}

// InitializeWithConfig is Initialize's counterpart for callers that want to
// set NumFibers or a Logger; numThreads == 0 in cfg is still the degenerate
// no-op.
func InitializeWithConfig(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if cfg.NumThreads == 0 {
		return
	}
	if global != nil {
		panic("fiberjobs: Initialize called while already initialized")
	}
	global = NewWithConfig(cfg)
}

// Deinitialize tears down the process-wide Scheduler (§4.7). It is not
// reentrant; calling it without a prior Initialize is a no-op so that
// Initialize(0) followed by Deinitialize() (the degenerate pairing) behaves
// harmlessly.
func Deinitialize() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		return
	}
	global.Close()
	global = nil
}

func active() *Scheduler {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		panic("fiberjobs: scheduler not initialized; call Initialize first")
	}
	return global
}

// KickJob submits job to the process-wide Scheduler. See Scheduler.KickJob.
func KickJob(job Job) { active().KickJob(job) }

// KickJobs submits jobs to the process-wide Scheduler. See Scheduler.KickJobs.
func KickJobs(jobs []Job) { active().KickJobs(jobs) }

// KickMainThreadJob submits job to the MAIN queue. See Scheduler.KickMainThreadJob.
func KickMainThreadJob(job Job) { active().KickMainThreadJob(job) }

// KickMainThreadJobs submits jobs to the MAIN queue. See Scheduler.KickMainThreadJobs.
func KickMainThreadJobs(jobs []Job) { active().KickMainThreadJobs(jobs) }

// MainThread returns the process-wide Scheduler's main-thread JobContext.
func MainThread() *JobContext { return active().MainThread() }

// RunOnMainThreadAndWait runs entry on the main thread and blocks the caller
// until it completes, short-circuiting straight to entry when the caller is
// already the main thread. See Scheduler.RunOnMainThreadAndWait.
func RunOnMainThreadAndWait(entry JobFunc, arg any) { active().RunOnMainThreadAndWait(entry, arg) }

// StatsSnapshot reports the process-wide Scheduler's diagnostics. See Scheduler.Stats.
func StatsSnapshot() Stats { return active().Stats() }

// WaitForCounter blocks the calling goroutine until counter.Load() <=
// desired, servicing the process-wide Scheduler's work in the meantime (§6).
// It is the top-level counterpart to JobContext.WaitForCounter, for use by
// whichever goroutine the caller considers "main" (see MainThread in §9.1);
// calling it from inside a job's own entry point should go through that
// job's *JobContext instead, so nested waits carry the right main-thread
// affinity.
func WaitForCounter(counter *Counter, desired int32) {
	active().MainThread().WaitForCounter(counter, desired)
}

// WaitForCounterAndFree is WaitForCounter plus releasing counter once the
// wait completes (§6).
func WaitForCounterAndFree(counter *Counter, desired int32) {
	active().MainThread().WaitForCounterAndFree(counter, desired)
}
