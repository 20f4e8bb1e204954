package stats

// Engine converts successive counter snapshots into byte/sec rates.
// It keeps the most recent snapshot per interface; state for each
// interface is independent. The sampling loop is single-threaded, so
// Engine does no locking.
type Engine struct {
	previous map[string]Snapshot
}

// NewEngine returns an Engine with no baselines.
func NewEngine() *Engine {
	return &Engine{previous: make(map[string]Snapshot)}
}

// Compute returns the throughput between the stored prior snapshot and
// cur. The first snapshot for an interface only establishes the
// baseline and yields no rate. A non-positive elapsed time (duplicate
// tick, clock jump) also yields no rate, and leaves the stored
// baseline untouched so the next valid tick still has a usable prior.
// A counter that went backwards (device reset, counter wrap) clamps
// that direction to zero rather than producing a negative rate.
func (e *Engine) Compute(cur Snapshot) (Sample, bool) {
	prior, ok := e.previous[cur.Interface]
	if !ok {
		e.previous[cur.Interface] = cur
		return Sample{}, false
	}

	elapsed := cur.Taken.Sub(prior.Taken).Seconds()
	if elapsed <= 0 {
		return Sample{}, false
	}

	s := Sample{Taken: cur.Taken}
	if cur.RxBytes >= prior.RxBytes {
		s.RxRate = float64(cur.RxBytes-prior.RxBytes) / elapsed
	}
	if cur.TxBytes >= prior.TxBytes {
		s.TxRate = float64(cur.TxBytes-prior.TxBytes) / elapsed
	}

	e.previous[cur.Interface] = cur
	return s, true
}

// Forget drops the stored snapshot for an interface, so that a
// reappearing interface starts a fresh baseline instead of computing a
// rate across the gap.
func (e *Engine) Forget(name string) {
	delete(e.previous, name)
}

// Tracked returns how many interfaces currently have a baseline.
func (e *Engine) Tracked() int {
	return len(e.previous)
}
