package views

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"vigia/internal/api"
	"vigia/internal/engine"
	"vigia/tui/styles"
)

func testView() DashboardView {
	v := NewDashboardView(styles.DefaultTheme)
	v.SetSize(100, 30)
	return v
}

func testObjects() []api.DetectedObject {
	return []api.DetectedObject{
		{ID: 102, Type: api.VehicleCar, Confidence: 88.1, DetectedAt: "10:00:04", Status: api.StatusActive, Duration: "12s"},
		{ID: 101, Type: api.VehicleMotorcycle, Confidence: 72.0, DetectedAt: "10:00:01", Status: api.StatusExpired, Duration: "15s"},
	}
}

func TestSampleSeriesShapes(t *testing.T) {
	want := map[api.Period]int{
		api.PeriodDay:   24,
		api.PeriodWeek:  7,
		api.PeriodMonth: 5,
	}
	for p, n := range want {
		s := SampleSeries(p)
		if len(s.Labels) != n || len(s.Data) != n {
			t.Errorf("%s samples: %d labels / %d values, want %d of each",
				p, len(s.Labels), len(s.Data), n)
		}
	}
}

func TestSetPeriodLoadsSamples(t *testing.T) {
	v := testView()

	for _, p := range api.Periods() {
		v.SetPeriod(p)
		if v.Period() != p {
			t.Errorf("Period() = %s, want %s", v.Period(), p)
		}
		labels, data := v.ChartSeries()
		want := SampleSeries(p)
		if !reflect.DeepEqual(labels, want.Labels) || !reflect.DeepEqual(data, want.Data) {
			t.Errorf("%s: chart series do not match the period samples", p)
		}
		if v.reveal != 0 {
			t.Errorf("%s: reveal = %v after period switch, want 0", p, v.reveal)
		}
	}
}

func TestSetSnapshotSwapsLiveSeries(t *testing.T) {
	v := testView()
	for v.AdvanceReveal() {
	}

	snap := &engine.Snapshot{
		Connected: true,
		Running:   true,
		Analytics: map[api.Period]api.Series{
			api.PeriodDay: {Labels: []string{"00:00"}, Data: []float64{12}},
		},
	}
	v.SetSnapshot(snap)

	labels, data := v.ChartSeries()
	if !reflect.DeepEqual(labels, []string{"00:00"}) || !reflect.DeepEqual(data, []float64{12}) {
		t.Errorf("chart = %v/%v, want live day series", labels, data)
	}
	if v.reveal != 1 {
		t.Error("live update must not restart the reveal animation")
	}
}

func TestSetSnapshotKeepsChartForOtherPeriod(t *testing.T) {
	v := testView()
	v.SetPeriod(api.PeriodWeek)

	v.SetSnapshot(&engine.Snapshot{
		Analytics: map[api.Period]api.Series{
			api.PeriodDay: {Labels: []string{"00:00"}, Data: []float64{12}},
		},
	})

	labels, _ := v.ChartSeries()
	if !reflect.DeepEqual(labels, SampleSeries(api.PeriodWeek).Labels) {
		t.Error("day analytics must not replace the week chart")
	}
}

func TestViewShowsRunningIndicator(t *testing.T) {
	v := testView()

	v.SetSnapshot(&engine.Snapshot{Connected: true, Running: true})
	if !strings.Contains(v.View(), "Detection running") {
		t.Error("running snapshot should show the running indicator")
	}

	v.SetSnapshot(&engine.Snapshot{Connected: true, Running: false})
	if !strings.Contains(v.View(), "Detection stopped") {
		t.Error("stopped snapshot should show the stopped indicator")
	}
}

func TestBusyOverridesIndicator(t *testing.T) {
	v := testView()
	v.SetBusy("starting detection")
	out := v.View()
	if !strings.Contains(out, "starting detection") {
		t.Error("busy label should replace the indicator")
	}
	if strings.Contains(out, "Detection stopped") {
		t.Error("indicator should be hidden while a command is in flight")
	}
}

func TestExactlyOneActivePeriodTab(t *testing.T) {
	v := testView()
	for _, p := range api.Periods() {
		v.SetPeriod(p)
		out := v.View()
		active := 0
		for _, q := range api.Periods() {
			if strings.Contains(out, "["+q.Title()+"]") {
				active++
				if q != p {
					t.Errorf("period %s: tab %s marked active", p, q)
				}
			}
		}
		if active != 1 {
			t.Errorf("period %s: %d active tabs, want 1", p, active)
		}
	}
}

func TestTableRowsMatchObjects(t *testing.T) {
	v := testView()
	v.SetSnapshot(&engine.Snapshot{Objects: testObjects(), ActiveObjects: 1})

	out := v.View()
	if !strings.Contains(out, "Detected Objects (2)") {
		t.Error("table title should carry the object count")
	}
	if !strings.Contains(out, "102") || !strings.Contains(out, "101") {
		t.Error("all object ids should be rendered")
	}
	if !strings.Contains(out, "motorcycle") {
		t.Error("vehicle type should be rendered")
	}
	if !strings.Contains(out, "88.1%") {
		t.Error("confidence should be rendered with one decimal")
	}
}

func TestEmptyTableIdempotent(t *testing.T) {
	v := testView()
	v.SetSnapshot(&engine.Snapshot{Objects: nil})
	first := v.View()
	v.SetSnapshot(&engine.Snapshot{Objects: []api.DetectedObject{}})
	second := v.View()

	if first != second {
		t.Error("rendering an empty table twice should produce identical output")
	}
	if !strings.Contains(first, "No objects detected") {
		t.Error("empty table should show the empty-state message")
	}
}

func TestFailedCycleKeepsRows(t *testing.T) {
	v := testView()
	good := &engine.Snapshot{Connected: true, Objects: testObjects(), LastUpdate: time.Now()}
	v.SetSnapshot(good)

	// A failed cycle produces a snapshot with the same data and only the
	// connectivity flag flipped.
	bad := *good
	bad.Connected = false
	v.SetSnapshot(&bad)

	if !strings.Contains(v.View(), "Detected Objects (2)") {
		t.Error("failed cycle must leave previously rendered rows in place")
	}
}

func TestConfidenceTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  confTier
	}{
		{0, confLow},
		{59.9, confLow},
		{60, confMid},
		{79.9, confMid},
		{80, confHigh},
		{100, confHigh},
	}
	for _, tt := range tests {
		if got := confidenceTier(tt.score); got != tt.want {
			t.Errorf("confidenceTier(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestCursorClampsOnShrink(t *testing.T) {
	v := testView()
	v.SetSnapshot(&engine.Snapshot{Objects: testObjects()})
	v.cursor = 1

	v.SetSnapshot(&engine.Snapshot{Objects: testObjects()[:1]})
	if v.cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", v.cursor)
	}
}

func TestResetChartRestoresSamples(t *testing.T) {
	v := testView()
	v.SetSnapshot(&engine.Snapshot{
		Analytics: map[api.Period]api.Series{
			api.PeriodDay: {Labels: []string{"00:00"}, Data: []float64{12}},
		},
	})

	v.ResetChart()

	labels, data := v.ChartSeries()
	want := SampleSeries(api.PeriodDay)
	if !reflect.DeepEqual(labels, want.Labels) || !reflect.DeepEqual(data, want.Data) {
		t.Error("ResetChart should restore the period placeholder samples")
	}
	if v.reveal != 0 {
		t.Error("ResetChart should restart the reveal animation")
	}
}
