// Package fiberjobs is a fiber-based parallel job scheduler for latency-sensitive,
// throughput-oriented workloads such as game engines and simulation runtimes.
//
// A fixed pool of worker goroutines drains per-priority ready queues and runs short
// jobs to completion. A job may synchronously wait on a Counter reaching a desired
// value; the waiting call parks without blocking its worker's ability to make
// progress on other work (see JobContext.WaitForCounter).
//
// Typical use:
//
//	fiberjobs.InitializeWithConfig(fiberjobs.DefaultConfig()) // hardware concurrency - 1 threads
//	defer fiberjobs.Deinitialize()
//
//	var c fiberjobs.Counter
//	c.Store(int32(len(work)))
//	for _, w := range work {
//		fiberjobs.KickJob(fiberjobs.Job{
//			Entry:    process,
//			Arg:      w,
//			Counter:  &c,
//			Priority: fiberjobs.Normal,
//		})
//	}
//	fiberjobs.WaitForCounter(&c, 0)
//
// Initialize(0) is a deliberate no-op (§4.7): pass a positive thread count,
// or DefaultConfig()'s via InitializeWithConfig, to actually spin up workers.
package fiberjobs
