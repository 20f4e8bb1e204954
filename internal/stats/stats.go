// Package stats derives per-interface throughput rates from cumulative
// counter snapshots.
package stats

import "time"

// Snapshot is one read of an interface's cumulative byte counters.
// Snapshots are transient: only the most recent one per interface is
// retained, to compute the next rate.
type Snapshot struct {
	// Interface is the network interface name (e.g. "eth0", "wlan0").
	Interface string
	// RxBytes is the cumulative received byte counter.
	RxBytes uint64
	// TxBytes is the cumulative transmitted byte counter.
	TxBytes uint64
	// Taken is when the counters were read.
	Taken time.Time
}

// Sample is an instantaneous throughput derived from two successive
// snapshots. Rates are bytes per second and never negative.
type Sample struct {
	RxRate float64
	TxRate float64
	Taken  time.Time
}
