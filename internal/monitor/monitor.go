// Package monitor drives the sampling loop: it reconciles the set of
// tracked interfaces against what the system reports and turns counter
// reads into windowed rate history.
package monitor

import (
	"log/slog"
	"sort"
	"time"

	"netchoo/internal/config"
	"netchoo/internal/series"
	"netchoo/internal/stats"
)

// Sampler is the counter source. *netif.Sampler is the production
// implementation; tests substitute a fake.
type Sampler interface {
	ActiveInterfaces() []string
	ReadCounters(name string) (rx, tx uint64)
}

// Monitor owns one Series per active interface, keyed by name. Every
// method runs on the single tick goroutine; there is no locking.
type Monitor struct {
	cfg     config.Config
	sampler Sampler
	engine  *stats.Engine
	series  map[string]*series.Series
}

// New returns a Monitor with an empty registry.
func New(cfg config.Config, sampler Sampler) *Monitor {
	return &Monitor{
		cfg:     cfg,
		sampler: sampler,
		engine:  stats.NewEngine(),
		series:  make(map[string]*series.Series),
	}
}

// Tick runs one sampling round: reconcile the registry against the
// active set, read counters, derive rates and append them. It reports
// whether the interface set changed, so the caller knows to rebuild
// its layout. One bad interface never aborts the round.
func (m *Monitor) Tick(now time.Time) bool {
	active := m.sampler.ActiveInterfaces()
	changed := m.reconcile(active)

	for _, name := range active {
		rx, tx := m.sampler.ReadCounters(name)
		sample, ok := m.engine.Compute(stats.Snapshot{
			Interface: name,
			RxBytes:   rx,
			TxBytes:   tx,
			Taken:     now,
		})
		if !ok {
			// Baseline tick or clock anomaly: chart a flat zero so
			// the trace stays continuous.
			sample = stats.Sample{Taken: now}
		}
		m.series[name].Append(sample)
	}
	return changed
}

// reconcile makes the registry match the active set. New interfaces
// get a fresh empty series; vanished ones are dropped together with
// their rate baseline, so a reappearance starts clean instead of
// computing a rate across the gap.
func (m *Monitor) reconcile(active []string) bool {
	current := make(map[string]bool, len(active))
	for _, name := range active {
		current[name] = true
	}

	changed := false
	for name := range m.series {
		if !current[name] {
			delete(m.series, name)
			m.engine.Forget(name)
			changed = true
			slog.Debug("Interface vanished", "interface", name)
		}
	}
	for _, name := range active {
		if _, ok := m.series[name]; !ok {
			m.series[name] = series.New(m.cfg.WindowDuration)
			changed = true
			slog.Debug("Interface discovered", "interface", name)
		}
	}
	return changed
}

// Interfaces returns the tracked interface names in sorted order, so
// the chart layout is stable across ticks.
func (m *Monitor) Interfaces() []string {
	names := make([]string, 0, len(m.series))
	for name := range m.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series returns the history for one tracked interface, or nil if the
// interface is not tracked.
func (m *Monitor) Series(name string) *series.Series {
	return m.series[name]
}

// Config returns the immutable startup configuration.
func (m *Monitor) Config() config.Config {
	return m.cfg
}
