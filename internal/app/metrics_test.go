package app

import (
	"testing"
	"time"
)

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics()

	m.RecordKey()
	m.RecordKey()
	m.RecordResize()
	m.RecordReload()
	m.RecordRender(10 * time.Millisecond)
	m.RecordRender(30 * time.Millisecond)

	s := m.Snapshot()
	if s.Keys != 2 {
		t.Errorf("Keys = %d, expected 2", s.Keys)
	}
	if s.Resizes != 1 || s.Reloads != 1 {
		t.Errorf("Resizes = %d, Reloads = %d, expected 1 and 1", s.Resizes, s.Reloads)
	}
	if s.Renders != 2 {
		t.Errorf("Renders = %d, expected 2", s.Renders)
	}
	if s.AvgRender != 20*time.Millisecond {
		t.Errorf("AvgRender = %v, expected 20ms", s.AvgRender)
	}
	if s.MaxRender != 30*time.Millisecond {
		t.Errorf("MaxRender = %v, expected 30ms", s.MaxRender)
	}
}

func TestMetrics_EmptySnapshot(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.Renders != 0 || s.AvgRender != 0 {
		t.Errorf("unexpected snapshot: %+v", s)
	}
	if s.Uptime < 0 {
		t.Errorf("negative uptime %v", s.Uptime)
	}
}

func TestMetricsSnapshot_Fields(t *testing.T) {
	m := NewMetrics()
	m.RecordKey()

	fields := m.Snapshot().Fields()
	if fields["keys"] != uint64(1) {
		t.Errorf("keys field = %v", fields["keys"])
	}
	for _, k := range []string{"resizes", "reloads", "renders", "avg_render", "max_render", "uptime"} {
		if _, ok := fields[k]; !ok {
			t.Errorf("missing field %q", k)
		}
	}
}

func TestApplicationCountsKeys(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))
	if err := typeKeys(t, app, "ihi\x1b"); err != nil {
		t.Fatal(err)
	}
	if got := app.Metrics().Snapshot().Keys; got != 4 {
		t.Errorf("Keys = %d, expected 4", got)
	}
}
