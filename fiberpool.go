package fiberjobs

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultNumFibers is the fiber pool capacity used when a Config leaves
// NumFibers unset, matching the reference's NUM_FIBERS default.
const DefaultNumFibers = 150

// MaxNumFibers is the hard ceiling on fiber pool capacity.
const MaxNumFibers = 2028

// fiberToken stands in for a reusable user-mode stack. In this Go port a
// fiber is not a literal stack-switch target (see DESIGN.md); it
// is a bounded pool token that still has its own identity, which the
// schedule list keys on and Stats reports against.
type fiberToken struct {
	id uint64
}

// fiberPool is the bounded FIFO of pre-created fiber tokens described in
// §4.2: acquire() fails fatally when the pool is exhausted (too many
// concurrently outstanding waits/jobs for NumFibers to cover), release()
// returns a token for reuse. A single spin lock guards the pool, matching
// the reference. log receives the exhaustion event before the pool panics,
// per Config's promise that fiber-pool exhaustion is logged (SPEC_FULL.md §2.1).
type fiberPool struct {
	mu     SpinLock
	free   []fiberToken
	cap    int
	nextID uint64
	log    *zap.Logger
}

func newFiberPool(capacity int, log *zap.Logger) *fiberPool {
	p := &fiberPool{free: make([]fiberToken, 0, capacity), cap: capacity, log: log}
	for i := 0; i < capacity; i++ {
		p.nextID++
		p.free = append(p.free, fiberToken{id: p.nextID})
	}
	return p
}

// acquire pops a token from the pool. Exhaustion is the one hard failure the
// scheduler anticipates (§4.2, §7) and is fatal: it indicates more
// concurrent waits/jobs are outstanding than NumFibers was sized for. It is
// logged at Error level before the panic unwinds, so the cause is visible in
// whatever sink Config.Logger was pointed at even though the process is
// about to come down.
func (p *fiberPool) acquire() fiberToken {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		if p.log != nil {
			p.log.Error("fiberjobs: fiber pool exhausted", zap.Int("capacity", p.cap))
		}
		panic(fmt.Sprintf("fiberjobs: fiber pool exhausted (capacity %d); too many concurrent waits", p.cap))
	}
	tok := p.free[0]
	p.free = p.free[1:]
	return tok
}

func (p *fiberPool) release(tok fiberToken) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, tok)
}

// len reports the number of fibers currently parked in the pool, used by
// Stats and by tests asserting invariant 4 (pool size equals capacity at
// quiescence).
func (p *fiberPool) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

func (p *fiberPool) capacity() int {
	return p.cap
}
