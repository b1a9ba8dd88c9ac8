package benchmarks

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/go-foundations/fiberjobs"
)

// Benchmark fanning a batch of trivial jobs out across different worker
// counts, the fiberjobs analogue of the teacher's BenchmarkWorkerCounts.
func BenchmarkFanout(b *testing.B) {
	workerCounts := []int{1, 2, 4, 8}
	for _, n := range workerCounts {
		b.Run(fmt.Sprintf("workers=%d", n), func(b *testing.B) {
			benchmarkFanout(b, n)
		})
	}
}

func benchmarkFanout(b *testing.B, numThreads int) {
	s := fiberjobs.NewWithConfig(fiberjobs.Config{NumThreads: numThreads, NumFibers: 256})
	defer s.Close()

	const jobCount = 500
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var c fiberjobs.Counter
		c.Store(jobCount)
		var processed int64
		jobs := make([]fiberjobs.Job, jobCount)
		for j := range jobs {
			jobs[j] = fiberjobs.Job{
				Priority: fiberjobs.Normal,
				Counter:  &c,
				Entry: func(ctx *fiberjobs.JobContext, arg any) {
					atomic.AddInt64(&processed, 1)
				},
			}
		}
		s.KickJobs(jobs)
		s.MainThread().WaitForCounter(&c, 0)
	}
}

// BenchmarkWaitForCounter measures the cost of the wait/resume cycle in
// isolation: each iteration kicks one empty job against its own
// single-count counter and waits on that counter from the main thread,
// taking the slow path whenever the job has not finished by then.
func BenchmarkWaitForCounter(b *testing.B) {
	s := fiberjobs.NewWithConfig(fiberjobs.Config{NumThreads: 4, NumFibers: 256})
	defer s.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var c fiberjobs.Counter
		c.Store(1)
		s.KickJob(fiberjobs.Job{
			Priority: fiberjobs.Normal,
			Counter:  &c,
			Entry:    func(ctx *fiberjobs.JobContext, arg any) {},
		})
		s.MainThread().WaitForCounter(&c, 0)
	}
}
