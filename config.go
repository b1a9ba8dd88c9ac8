package fiberjobs

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/go-foundations/fiberjobs/internal/telemetry"
)

// Config holds construction-time configuration for a Scheduler, the same
// shape the teacher's workerpool.Config plays for its own pool: a small set
// of knobs consumed by NewWithConfig, with New deferring to DefaultConfig.
type Config struct {
	// NumThreads is the number of background worker goroutines to spawn.
	// Zero makes InitializeWithConfig a no-op (§4.7 step 1); NewWithConfig
	// instead replaces zero, like any value outside [1, hardwareConcurrency],
	// with hardwareConcurrency-1 (at least 1).
	NumThreads int
	// NumFibers is the fiber pool capacity (§4.2). Zero defaults to
	// DefaultNumFibers; values above MaxNumFibers are clamped down.
	NumFibers int
	// Logger receives scheduler lifecycle events (Initialize/Deinitialize,
	// fiber-pool exhaustion, worker panics). A nil Logger installs a
	// discard logger, keeping the library silent by default.
	Logger *zap.Logger
}

// DefaultConfig returns the configuration New uses: hardware-concurrency-
// minus-one threads (at least one) and the default fiber pool size.
func DefaultConfig() Config {
	threads := runtime.GOMAXPROCS(0) - 1
	if threads < 1 {
		threads = 1
	}
	return Config{
		NumThreads: threads,
		NumFibers:  DefaultNumFibers,
		Logger:     nil,
	}
}

// resolveThreads implements the clamping rule from §4.7 step 2: a count
// outside [1, hardwareConcurrency] is replaced with hardwareConcurrency-1.
func resolveThreads(requested int) int {
	hw := runtime.GOMAXPROCS(0)
	if requested < 1 || requested > hw {
		requested = hw - 1
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

func resolveFibers(requested int) int {
	if requested <= 0 {
		requested = DefaultNumFibers
	}
	if requested > MaxNumFibers {
		requested = MaxNumFibers
	}
	return requested
}

func resolveLogger(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return zap.NewNop()
}

// NewProductionLogger builds the production zap.Logger this package uses for
// scheduler lifecycle events when a caller opts in via Config.Logger,
// instead of the silent-by-default zap.NewNop(). See internal/telemetry for
// the job-name truncation it installs.
func NewProductionLogger() (*zap.Logger, error) {
	return telemetry.New()
}
