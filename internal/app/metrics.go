package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what happened during an editing session. The summary is
// logged when the application closes.
type Metrics struct {
	// Input handling
	keyCount    atomic.Uint64
	resizeCount atomic.Uint64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	// Config reloads
	reloadCount atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records a handled key event.
func (m *Metrics) RecordKey() {
	m.keyCount.Add(1)
}

// RecordResize records a terminal resize.
func (m *Metrics) RecordResize() {
	m.resizeCount.Add(1)
}

// RecordReload records a config reload attempt.
func (m *Metrics) RecordReload() {
	m.reloadCount.Add(1)
}

// RecordRender records how long one repaint took.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.renderMaxNs.Load()
		if ns <= old {
			break
		}
		if m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Keys      uint64
	Resizes   uint64
	Reloads   uint64
	Renders   uint64
	AvgRender time.Duration
	MaxRender time.Duration
	Uptime    time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Keys:      m.keyCount.Load(),
		Resizes:   m.resizeCount.Load(),
		Reloads:   m.reloadCount.Load(),
		Renders:   m.renderCount.Load(),
		MaxRender: time.Duration(m.renderMaxNs.Load()),
		Uptime:    time.Since(m.startTime),
	}
	if s.Renders > 0 {
		s.AvgRender = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	return s
}

// Fields returns the snapshot as logger fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"keys":       s.Keys,
		"resizes":    s.Resizes,
		"reloads":    s.Reloads,
		"renders":    s.Renders,
		"avg_render": s.AvgRender,
		"max_render": s.MaxRender,
		"uptime":     s.Uptime.Round(time.Second),
	}
}

// Metrics returns the application's metrics tracker.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
