package engine

import (
	"time"

	"vigia/internal/api"
)

// CountSample is one point of poll history, kept for the count trend
// sparkline.
type CountSample struct {
	Timestamp time.Time
	Active    int
	Total     int64
}

// Snapshot is a point-in-time copy of everything the dashboard
// renders. A failed cycle never produces a partial snapshot: the data
// fields keep their last good values and only Connected flips.
type Snapshot struct {
	Connected     bool
	Running       bool
	CurrentCount  int64
	ActiveObjects int
	Objects       []api.DetectedObject
	Analytics     map[api.Period]api.Series
	StatsByClass  map[string]api.ClassStat
	LastReset     time.Time
	LastUpdate    time.Time
	LastError     error
	PollCount     int
	ErrorCount    int
	History       []CountSample
}

// Event is emitted to subscribers after each poll cycle or health
// probe.
type Event struct {
	Snapshot *Snapshot
}
