// Package series keeps a bounded, time-windowed history of throughput
// samples per interface and maintains the vertical scale its chart is
// drawn against.
package series

import (
	"math"
	"time"

	"netchoo/internal/stats"
)

const (
	// initialScale is the vertical ceiling for a brand-new series,
	// 1 MiB/s.
	initialScale = 1 << 20

	// scaleFloor stops the scale from shrinking below 1 KiB/s, so idle
	// traffic does not get flattened against a near-zero ceiling.
	scaleFloor = 1 << 10

	// The scale grows once the peak crosses 80% of the ceiling and is
	// then set 20% above the peak; it shrinks only when the peak drops
	// under 30%, down to 50% above the peak. The band in between keeps
	// the scale put so it does not oscillate on every tick.
	growThreshold   = 0.8
	growHeadroom    = 1.2
	shrinkThreshold = 0.3
	shrinkHeadroom  = 1.5
)

// Series is a sliding time window of rate samples for one interface.
// Samples arrive in timestamp order from the single sampling
// goroutine; Series does no locking.
type Series struct {
	window  time.Duration
	samples []stats.Sample
	scale   float64
}

// New returns an empty series retaining the given window of history.
func New(window time.Duration) *Series {
	return &Series{window: window, scale: initialScale}
}

// Append pushes a sample, evicts everything that has slid out of the
// window relative to the new sample's timestamp, and updates the
// vertical scale against the retained peak.
func (s *Series) Append(sample stats.Sample) {
	s.samples = append(s.samples, sample)

	cutoff := sample.Taken.Add(-s.window)
	drop := 0
	for drop < len(s.samples) && s.samples[drop].Taken.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		s.samples = append(s.samples[:0], s.samples[drop:]...)
	}

	s.rescale()
}

func (s *Series) rescale() {
	if len(s.samples) == 0 {
		return
	}
	peak := 0.0
	for _, sm := range s.samples {
		peak = math.Max(peak, math.Max(sm.RxRate, sm.TxRate))
	}
	switch {
	case peak > s.scale*growThreshold:
		s.scale = peak * growHeadroom
	case peak < s.scale*shrinkThreshold && s.scale > scaleFloor:
		s.scale = math.Max(peak*shrinkHeadroom, scaleFloor)
	}
}

// Snapshot returns the retained samples oldest-first. The slice is a
// copy; the caller may hold it across ticks.
func (s *Series) Snapshot() []stats.Sample {
	out := make([]stats.Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Latest returns the most recent sample, if any.
func (s *Series) Latest() (stats.Sample, bool) {
	if len(s.samples) == 0 {
		return stats.Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}

// Len returns the number of retained samples.
func (s *Series) Len() int {
	return len(s.samples)
}

// Scale returns the current vertical ceiling in bytes per second.
func (s *Series) Scale() float64 {
	return s.scale
}

// Window returns the retention window.
func (s *Series) Window() time.Duration {
	return s.window
}
