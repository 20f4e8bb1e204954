package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netchoo/internal/config"
)

var t0 = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// fakeSampler is a scriptable counter source.
type fakeSampler struct {
	active   []string
	counters map[string][2]uint64 // name -> {rx, tx}
}

func (f *fakeSampler) ActiveInterfaces() []string {
	return f.active
}

func (f *fakeSampler) ReadCounters(name string) (uint64, uint64) {
	c := f.counters[name]
	return c[0], c[1]
}

func testConfig() config.Config {
	return config.Config{
		WindowDuration: 300 * time.Second,
		SampleInterval: time.Second,
	}
}

func TestMonitor_FirstTickCreatesSeriesWithBaseline(t *testing.T) {
	f := &fakeSampler{
		active:   []string{"eth0", "wlan0"},
		counters: map[string][2]uint64{"eth0": {1000, 2000}, "wlan0": {10, 20}},
	}
	m := New(testConfig(), f)

	changed := m.Tick(t0)
	assert.True(t, changed, "layout changes when interfaces appear")
	assert.Equal(t, []string{"eth0", "wlan0"}, m.Interfaces())

	// Baseline tick charts a flat zero.
	s := m.Series("eth0")
	require.NotNil(t, s)
	require.Equal(t, 1, s.Len())
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Zero(t, latest.RxRate)
	assert.Zero(t, latest.TxRate)
	assert.Equal(t, t0, latest.Taken)
}

func TestMonitor_SecondTickComputesRates(t *testing.T) {
	f := &fakeSampler{
		active:   []string{"eth0"},
		counters: map[string][2]uint64{"eth0": {0, 0}},
	}
	m := New(testConfig(), f)

	m.Tick(t0)

	// 1 MiB rx and 2 KiB tx over one second.
	f.counters["eth0"] = [2]uint64{1048576, 2048}
	changed := m.Tick(t0.Add(time.Second))
	assert.False(t, changed, "interface set did not change")

	latest, ok := m.Series("eth0").Latest()
	require.True(t, ok)
	assert.Equal(t, 1048576.0, latest.RxRate)
	assert.Equal(t, 2048.0, latest.TxRate)
}

func TestMonitor_VanishedInterfaceIsDropped(t *testing.T) {
	f := &fakeSampler{
		active:   []string{"eth0", "tun0"},
		counters: map[string][2]uint64{"eth0": {0, 0}, "tun0": {100, 100}},
	}
	m := New(testConfig(), f)

	m.Tick(t0)
	m.Tick(t0.Add(time.Second))

	f.active = []string{"eth0"}
	changed := m.Tick(t0.Add(2 * time.Second))
	assert.True(t, changed)
	assert.Equal(t, []string{"eth0"}, m.Interfaces())
	assert.Nil(t, m.Series("tun0"))
}

func TestMonitor_ReappearanceStartsFresh(t *testing.T) {
	f := &fakeSampler{
		active:   []string{"tun0"},
		counters: map[string][2]uint64{"tun0": {1000, 1000}},
	}
	m := New(testConfig(), f)

	m.Tick(t0)
	m.Tick(t0.Add(time.Second))
	require.Equal(t, 2, m.Series("tun0").Len())

	// Interface disappears for 10 seconds...
	f.active = nil
	m.Tick(t0.Add(2 * time.Second))
	require.Nil(t, m.Series("tun0"))

	// ...and comes back with much larger counters. The new series is
	// brand new and the first tick is baseline-only: no rate may be
	// computed across the gap.
	f.active = []string{"tun0"}
	f.counters["tun0"] = [2]uint64{50_000_000, 50_000_000}
	m.Tick(t0.Add(12 * time.Second))

	s := m.Series("tun0")
	require.NotNil(t, s)
	require.Equal(t, 1, s.Len())
	latest, _ := s.Latest()
	assert.Zero(t, latest.RxRate)
	assert.Zero(t, latest.TxRate)
}

func TestMonitor_UnreadableInterfaceYieldsZeroNotAbort(t *testing.T) {
	// ReadCounters soft-fails to (0, 0); the tick must still append to
	// every active series.
	f := &fakeSampler{
		active:   []string{"eth0", "ghost0"},
		counters: map[string][2]uint64{"eth0": {500, 500}},
	}
	m := New(testConfig(), f)

	m.Tick(t0)
	m.Tick(t0.Add(time.Second))

	assert.Equal(t, 2, m.Series("eth0").Len())
	assert.Equal(t, 2, m.Series("ghost0").Len())

	latest, _ := m.Series("ghost0").Latest()
	assert.Zero(t, latest.RxRate)
}

func TestMonitor_DuplicateTickKeepsTraceContinuous(t *testing.T) {
	f := &fakeSampler{
		active:   []string{"eth0"},
		counters: map[string][2]uint64{"eth0": {0, 0}},
	}
	m := New(testConfig(), f)

	m.Tick(t0)
	f.counters["eth0"] = [2]uint64{4096, 0}
	m.Tick(t0) // same timestamp: clock anomaly

	// The anomalous tick appends a zero sample instead of a bogus rate.
	require.Equal(t, 2, m.Series("eth0").Len())
	latest, _ := m.Series("eth0").Latest()
	assert.Zero(t, latest.RxRate)

	// The baseline survived, so the next valid tick computes against t0.
	m.Tick(t0.Add(2 * time.Second))
	latest, _ = m.Series("eth0").Latest()
	assert.Equal(t, 2048.0, latest.RxRate)
}

func TestMonitor_SeriesUseConfiguredWindow(t *testing.T) {
	cfg := testConfig()
	cfg.WindowDuration = 5 * time.Second
	f := &fakeSampler{
		active:   []string{"eth0"},
		counters: map[string][2]uint64{"eth0": {0, 0}},
	}
	m := New(cfg, f)

	for i := 0; i <= 20; i++ {
		m.Tick(t0.Add(time.Duration(i) * time.Second))
	}
	assert.Equal(t, 6, m.Series("eth0").Len())
	assert.Equal(t, 5*time.Second, m.Series("eth0").Window())
}
