package fiberjobs

// waitEntry is WaitData (§3): the parked fiber's token, the counter and
// desired value it is waiting on, whether it may only be resumed by the
// main thread, and the channel used to signal it once some pump's
// CheckWaitList step (§4.6 step 2) has matched and removed it.
type waitEntry struct {
	token   fiberToken
	counter *Counter
	desired int32
	isMain  bool
	resumed chan struct{}
}

func (e *waitEntry) ready() bool {
	return e.counter.Load() <= e.desired
}

// scheduleList is the transient handoff map from §3/§4.5: a WaitForCounter
// slow path registers its entry here, keyed by the fiber token it is about
// to run as, before doing anything else. Only that fiber's own first pump
// iteration (UpdateWaitData, §4.6 step 1) promotes the entry into the wait
// list — never a different goroutine — which is what keeps the "record
// intent, then publish" ordering intact even though Go's own suspension
// point (the nested pump's resumed-channel check) makes the race this
// guards against structurally unreachable here (see DESIGN.md).
type scheduleList struct {
	mu      SpinLock
	entries map[uint64]*waitEntry
}

func newScheduleList() *scheduleList {
	return &scheduleList{entries: make(map[uint64]*waitEntry)}
}

func (s *scheduleList) put(tok fiberToken, e *waitEntry) {
	s.mu.Lock()
	s.entries[tok.id] = e
	s.mu.Unlock()
}

// take removes and returns the entry keyed by tok, if present. Called once
// per fiber by that fiber's own first pump iteration.
func (s *scheduleList) take(tok fiberToken) (*waitEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tok.id]
	if ok {
		delete(s.entries, tok.id)
	}
	return e, ok
}

func (s *scheduleList) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// waitList is the unordered collection of fully-parked WaitData (§3). A
// single spin lock guards it; CheckWaitList (§4.6 step 2) scans in
// insertion order and returns the first match, matching the reference's
// first-match-not-oldest-counter tie-break.
type waitList struct {
	mu      SpinLock
	entries []*waitEntry
}

func newWaitList(capacityHint int) *waitList {
	return &waitList{entries: make([]*waitEntry, 0, capacityHint)}
}

func (w *waitList) add(e *waitEntry) {
	w.mu.Lock()
	w.entries = append(w.entries, e)
	w.mu.Unlock()
}

// checkAndResume scans for the first entry whose counter has reached its
// desired value and whose main-thread affinity matches isMain (invariant 4
// in §3: a main-thread-bound wait may only be promoted/resumed by the main
// thread). On a match it removes the entry and closes its resumed channel,
// signaling the owning goroutine's nested pump loop to wake; it reports
// whether it resumed anything.
func (w *waitList) checkAndResume(isMain bool) bool {
	w.mu.Lock()
	for i, e := range w.entries {
		if e.isMain != isMain {
			continue
		}
		if e.ready() {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			w.mu.Unlock()
			close(e.resumed)
			return true
		}
	}
	w.mu.Unlock()
	return false
}

func (w *waitList) len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}
