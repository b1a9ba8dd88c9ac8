// Package workloads provides small helpers for building fiberjobs.Job
// batches; none of it sits on the scheduler's hot path.
package workloads

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/go-foundations/fiberjobs"
)

// AutoName returns a short diagnostic name for a job that wasn't given one.
// Job names are purely diagnostic (§3), so a random identifier is fine; it
// exists so log lines and Stats output can still distinguish unnamed jobs
// from each other.
func AutoName() string {
	return "job-" + uuid.NewString()[:8]
}

// Named returns job with Name set to AutoName() if it doesn't already carry
// one, leaving every other field untouched.
func Named(job fiberjobs.Job) fiberjobs.Job {
	if job.Name == "" {
		job.Name = AutoName()
	}
	return job
}

// Batch builds count jobs sharing an entry point, priority and counter, each
// invoked with the corresponding element of args and an auto-assigned name.
// It mirrors the fan-out pattern in Scenario 1 (§8: "Basic fanout") without
// requiring callers to hand-write the loop each time. Batch validates entry
// up front rather than letting a nil entry point reach KickJob/KickJobs,
// where it would panic partway through a batch.
func Batch(entry fiberjobs.JobFunc, args []any, priority fiberjobs.Priority, counter *fiberjobs.Counter) ([]fiberjobs.Job, error) {
	if entry == nil {
		return nil, fmt.Errorf("workloads: Batch: entry is nil")
	}
	if counter != nil && int(counter.Load()) != len(args) {
		return nil, fmt.Errorf("workloads: Batch: counter must be initialized to len(args) (%d), got %d", len(args), counter.Load())
	}

	jobs := make([]fiberjobs.Job, len(args))
	for i, a := range args {
		jobs[i] = fiberjobs.Job{
			Entry:    entry,
			Arg:      a,
			Counter:  counter,
			Priority: priority,
			Name:     AutoName(),
		}
	}
	return jobs, nil
}
