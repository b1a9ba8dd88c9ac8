package fiberjobs

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler is the process-wide state the reference keeps as module-level
// singletons (§9 Design Notes): the ready queues, the fiber pool, the
// schedule list and wait list, and the bookkeeping Initialize/Deinitialize
// need. Callers normally reach it through the package-level functions
// (Initialize, KickJob, ...), which thread a single global *Scheduler, but
// nothing prevents constructing and driving one directly for tests or for
// embedding more than one scheduler in a process.
type Scheduler struct {
	cfg Config
	log *zap.Logger

	high   jobQueue
	normal jobQueue
	low    jobQueue
	main   jobQueue

	pool     *fiberPool
	schedule *scheduleList
	wait     *waitList

	running bool
	runMu   sync.RWMutex

	wg sync.WaitGroup

	mainCtx *JobContext
}

// New creates a Scheduler with DefaultConfig, mirroring the teacher's
// New()/NewWithConfig() split.
func New() *Scheduler {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig builds a Scheduler and spawns its background workers,
// implementing §4.7 Initialize steps 2-7 (step 1, the numThreads==0
// degenerate case, is handled by the package-level Initialize wrapper,
// which simply never constructs a Scheduler in that case).
func NewWithConfig(cfg Config) *Scheduler {
	cfg.NumThreads = resolveThreads(cfg.NumThreads)
	cfg.NumFibers = resolveFibers(cfg.NumFibers)
	log := resolveLogger(cfg.Logger)

	s := &Scheduler{
		cfg:      cfg,
		log:      log,
		pool:     newFiberPool(cfg.NumFibers, log),
		schedule: newScheduleList(),
		wait:     newWaitList(cfg.NumFibers),
		running:  true,
	}
	s.mainCtx = &JobContext{sched: s, isMain: true}

	log.Info("fiberjobs: initialized",
		zap.Int("num_threads", cfg.NumThreads),
		zap.Int("num_fibers", cfg.NumFibers),
	)

	s.wg.Add(cfg.NumThreads)
	for i := 0; i < cfg.NumThreads; i++ {
		go s.workerMain(i)
	}
	return s
}

// workerMain is a background worker thread (§4.7 step 7): it has no fiber of
// its own to bootstrap in Go (the goroutine itself is the stackful context),
// so it goes straight into the worker loop as a non-main pump.
func (s *Scheduler) workerMain(id int) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("fiberjobs: worker terminated", zap.Int("worker", id), zap.Any("panic", r))
			panic(r)
		}
	}()
	for s.isRunning() {
		if !s.pumpOnce(false) {
			runtime.Gosched()
		}
	}
}

func (s *Scheduler) isRunning() bool {
	s.runMu.RLock()
	defer s.runMu.RUnlock()
	return s.running
}

// queueFor routes a priority to its ready queue (§4.4), folding Critical
// into High per the resolved open question in §9.1.
func (s *Scheduler) queueFor(p Priority) *jobQueue {
	switch p {
	case High, Critical:
		return &s.high
	case Low:
		return &s.low
	default:
		return &s.normal
	}
}

// KickJob routes job to the ready queue matching job.Priority (§4.4).
// Submitting a Job with a nil Entry is a programmer error and panics, per
// §7 (the reference calls this undefined behavior; Go turns it into a
// documented panic rather than silently misbehaving).
func (s *Scheduler) KickJob(job Job) {
	if job.Entry == nil {
		panic("fiberjobs: KickJob: job.Entry is nil")
	}
	s.queueFor(job.Priority).push(job)
}

// KickJobs submits jobs in order. Each still routes independently through
// queueFor/push, acquiring only the one priority-class lock it needs at a
// time (§4.4: "independent locks per priority preclude a single global
// hold").
func (s *Scheduler) KickJobs(jobs []Job) {
	for _, j := range jobs {
		s.KickJob(j)
	}
}

// KickMainThreadJob always routes to the MAIN queue regardless of
// job.Priority (§4.4).
func (s *Scheduler) KickMainThreadJob(job Job) {
	if job.Entry == nil {
		panic("fiberjobs: KickMainThreadJob: job.Entry is nil")
	}
	s.main.push(job)
}

func (s *Scheduler) KickMainThreadJobs(jobs []Job) {
	for _, j := range jobs {
		s.KickMainThreadJob(j)
	}
}

// MainThread returns the JobContext bound to the distinguished main thread:
// the only context whose WaitForCounter services the MAIN queue and whose
// waits may resume main-thread-bound entries (§4.6, §9.1). Initialize never
// assumes anything about which goroutine calls it; it is simply whichever
// goroutine later calls MainThread().WaitForCounter or drives the main
// pump — "platform bootstrap" (converting a caller thread into a
// schedulable context) is out of scope (§1) and is exactly this call.
func (s *Scheduler) MainThread() *JobContext {
	return s.mainCtx
}

// RunOnMainThreadAndWait is the original job system's
// ForceMainThreadExecution-equivalent (SPEC_FULL.md §2.3), called from
// outside any running job. There is no JobContext to consult here, so the
// caller is treated the same as JobContext.RunOnMainThreadAndWait treats a
// context already bound to the main pump: see that method for the
// kick-and-wait composition and its early-exit.
func (s *Scheduler) RunOnMainThreadAndWait(entry JobFunc, arg any) {
	s.mainCtx.RunOnMainThreadAndWait(entry, arg)
}

// runOnMainThreadAndWait is the composed KickMainThreadJob + WaitForCounter
// primitive behind JobContext.RunOnMainThreadAndWait's slow path: it adds no
// scheduler state of its own, built entirely from the public surface above.
func (s *Scheduler) runOnMainThreadAndWait(entry JobFunc, arg any) {
	var c Counter
	c.Store(1)
	s.KickMainThreadJob(Job{Entry: entry, Arg: arg, Counter: &c, Priority: Normal, Name: "run-on-main"})
	s.mainCtx.WaitForCounter(&c, 0)
}

// pickJob implements §4.6 step 4: on the main thread MAIN is tried first and,
// if a MAIN job is taken, the other queues are not consulted this
// iteration; otherwise priority order is HIGH -> NORMAL -> LOW.
func (s *Scheduler) pickJob(isMain bool) (Job, bool) {
	if isMain {
		if j, ok := s.main.pop(); ok {
			return j, true
		}
	}
	if j, ok := s.high.pop(); ok {
		return j, true
	}
	if j, ok := s.normal.pop(); ok {
		return j, true
	}
	if j, ok := s.low.pop(); ok {
		return j, true
	}
	return Job{}, false
}

func (s *Scheduler) queuesEmpty(isMain bool) bool {
	if isMain && s.main.len() > 0 {
		return false
	}
	return s.high.len() == 0 && s.normal.len() == 0 && s.low.len() == 0
}

// pumpOnce runs one iteration of the worker loop (§4.6), steps 2-5 (step 1,
// UpdateWaitData, is the waiter's own responsibility on its first iteration;
// see waitForCounter). It reports whether it did anything productive so
// callers can back off when idle instead of busy-spinning.
func (s *Scheduler) pumpOnce(isMain bool) bool {
	if s.wait.checkAndResume(isMain) {
		return true
	}
	if s.queuesEmpty(isMain) {
		return false
	}
	job, ok := s.pickJob(isMain)
	if !ok {
		return false
	}
	s.runJob(job, isMain)
	return true
}

// runJob executes a job's entry point under a fiber-pool token (§9.1: "once
// per job dispatched by a pump"), then decrements its counter if any (§4.6
// step 5). isMain reflects which pump picked the job, since that is what
// determines whether a nested WaitForCounter call inside it may service the
// MAIN queue and resume main-thread-bound waits.
func (s *Scheduler) runJob(job Job, isMain bool) {
	tok := s.pool.acquire()

	ctx := &JobContext{sched: s, isMain: isMain}
	job.Entry(ctx, job.Arg)
	// The token goes back before the decrement, so a waiter that sees the
	// counter reach its target also sees the pool refilled.
	s.pool.release(tok)
	if job.Counter != nil {
		job.Counter.dec()
	}
}

// waitForCounter is the shared implementation behind JobContext.WaitForCounter
// and JobContext.WaitForCounterAndFree (§4.5). isMain is fixed by which
// JobContext is calling, never by an explicit parameter (§9.1, resolving
// open question (c)).
func (s *Scheduler) waitForCounter(counter *Counter, desired int32, isMain bool) {
	// Fast path (§4.5 step 1): already satisfied, skip the scheduler
	// entirely.
	if counter.Load() <= desired {
		return
	}

	// Slow path (§4.5 step 2): acquire F_next, register the handoff in the
	// schedule list under its lock, then become F_next's execution —
	// concretely, a nested pump loop that both publishes its own entry
	// (promoting schedule-list -> wait-list exactly once, on its first
	// iteration) and keeps the underlying worker productive while it waits.
	tok := s.pool.acquire()
	entry := &waitEntry{token: tok, counter: counter, desired: desired, isMain: isMain, resumed: make(chan struct{})}
	s.schedule.put(tok, entry)

	promoted := false
	for {
		if !promoted {
			if e, ok := s.schedule.take(tok); ok {
				s.wait.add(e)
				promoted = true
			}
		}

		select {
		case <-entry.resumed:
			s.pool.release(tok)
			return
		default:
		}

		// §4.6 runs the worker/pump loop "while the global run flag is
		// true"; a nested pump owes the same contract (SPEC_FULL.md §9.1).
		// Without this check, a wait whose counter never reaches desired
		// before Close spins forever against queues and a wait list that
		// Close has already wiped, since nothing remains to close
		// entry.resumed. Treated as the "wait-after-deinit" fatal class
		// (§7): it indicates the counter this wait depends on was never
		// going to be satisfied before shutdown.
		if !s.isRunning() {
			panic("fiberjobs: WaitForCounter: scheduler was deinitialized while a wait was still outstanding")
		}

		if !s.pumpOnce(isMain) {
			runtime.Gosched()
		}
	}
}

// Close implements Deinitialize (§4.7): it stops the pick-next step on every
// worker's next loop iteration, joins them, then releases every fiber
// remaining in the pool, wait list and schedule list, and clears the
// queues. It is not reentrant.
func (s *Scheduler) Close() {
	s.runMu.Lock()
	s.running = false
	s.runMu.Unlock()

	time.Sleep(time.Millisecond)

	s.wg.Wait()

	s.high.clear()
	s.normal.clear()
	s.low.clear()
	s.main.clear()

	s.schedule.mu.Lock()
	s.schedule.entries = make(map[uint64]*waitEntry)
	s.schedule.mu.Unlock()

	s.wait.mu.Lock()
	s.wait.entries = nil
	s.wait.mu.Unlock()

	s.pool.mu.Lock()
	s.pool.free = nil
	s.pool.mu.Unlock()

	s.log.Info("fiberjobs: deinitialized")
}

// Stats is the pool-size/queue-depth diagnostic surface from SPEC_FULL.md
// §2.3: read under the same locks as the components it reports on, never
// consulted by the scheduler's own control flow.
type Stats struct {
	FreeFibers   int
	FiberCap     int
	HighDepth    int
	NormalDepth  int
	LowDepth     int
	MainDepth    int
	WaitListSize int
}

func (s *Scheduler) Stats() Stats {
	return Stats{
		FreeFibers:   s.pool.len(),
		FiberCap:     s.pool.capacity(),
		HighDepth:    s.high.len(),
		NormalDepth:  s.normal.len(),
		LowDepth:     s.low.len(),
		MainDepth:    s.main.len(),
		WaitListSize: s.wait.len(),
	}
}
