package detect

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vigia/internal/api"
)

// Config holds the detection loop settings.
type Config struct {
	FrameInterval time.Duration
	ExpireAfter   time.Duration
	MinConfidence float64
	Tracker       TrackerConfig
	Classes       []string
}

// Recorder receives registration counts for analytics bucketing. It
// is implemented by stats.Recorder.
type Recorder interface {
	Record(t time.Time, n int)
	Reset()
}

// Detector runs the frame loop: pull detections from the source, feed
// them through the tracker, count the newly registered vehicles.
type Detector struct {
	mu sync.Mutex

	cfg    Config
	source FrameSource
	rec    Recorder
	log    *slog.Logger

	tracker   *Tracker
	total     int64
	running   bool
	runID     string
	lastReset time.Time
	stopCh    chan struct{}
}

func New(cfg Config, source FrameSource, rec Recorder, log *slog.Logger) *Detector {
	if len(cfg.Classes) == 0 {
		cfg.Classes = []string{api.VehicleCar, api.VehicleMotorcycle}
	}
	return &Detector{
		cfg:       cfg,
		source:    source,
		rec:       rec,
		log:       log.With("component", "detector"),
		tracker:   NewTracker(cfg.Tracker),
		lastReset: time.Now(),
	}
}

// Start launches the frame loop. It returns false if detection is
// already running.
func (d *Detector) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return false
	}
	d.running = true
	d.runID = uuid.NewString()[:8]
	d.stopCh = make(chan struct{})
	go d.loop(d.stopCh)

	d.log.Info("detection started", "run_id", d.runID, "interval", d.cfg.FrameInterval)
	return true
}

// Stop halts the frame loop. It returns false if detection was not
// running; stopping twice is harmless.
func (d *Detector) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return false
	}
	d.running = false
	close(d.stopCh)

	d.log.Info("detection stopped", "run_id", d.runID, "total", d.total)
	return true
}

// Reset discards every track and zeroes the cumulative count. The
// frame loop, if running, keeps going against the fresh tracker.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tracker = NewTracker(d.cfg.Tracker)
	d.total = 0
	d.lastReset = time.Now()
	d.rec.Reset()

	d.log.Info("count reset")
}

func (d *Detector) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(d.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			d.step(now)
		}
	}
}

// step processes one frame.
func (d *Detector) step(now time.Time) {
	detections := d.source.Next()

	accepted := detections[:0]
	for _, det := range detections {
		if det.Confidence >= d.cfg.MinConfidence {
			accepted = append(accepted, det)
		}
	}

	d.mu.Lock()
	born := d.tracker.Update(now, accepted)
	d.total += int64(len(born))
	d.mu.Unlock()

	if len(born) > 0 {
		d.rec.Record(now, len(born))
		for _, tr := range born {
			d.log.Debug("vehicle registered", "id", tr.ID, "type", tr.Type, "confidence", tr.Confidence)
		}
	}
}

// Running reports whether the frame loop is active.
func (d *Detector) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Total returns the cumulative vehicle count since the last reset.
func (d *Detector) Total() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.total
}

// LastReset returns when the count was last zeroed.
func (d *Detector) LastReset() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastReset
}

// RunID identifies the current detection run, empty before the first
// start.
func (d *Detector) RunID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runID
}

// Classes returns the vehicle classes this detector reports.
func (d *Detector) Classes() []string {
	out := make([]string, len(d.cfg.Classes))
	copy(out, d.cfg.Classes)
	return out
}

// ExpireAfter returns how long a track stays Active after its last
// sighting.
func (d *Detector) ExpireAfter() time.Duration {
	return d.cfg.ExpireAfter
}

// Objects returns the current tracks, newest first.
func (d *Detector) Objects() []Track {
	d.mu.Lock()
	tracks := d.tracker.Tracks()
	d.mu.Unlock()

	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].FirstSeen.After(tracks[j].FirstSeen)
	})
	return tracks
}

// ActiveCount returns how many tracks are not yet expired at now.
func (d *Detector) ActiveCount(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	active := 0
	for _, tr := range d.tracker.Tracks() {
		if !tr.Expired(now, d.cfg.ExpireAfter) {
			active++
		}
	}
	return active
}

// TrackedCount returns the number of tracks, expired included.
func (d *Detector) TrackedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.Len()
}

// ClassCount summarizes one vehicle class among current tracks.
type ClassCount struct {
	Count      int
	Percentage float64
}

// ClassStats breaks current tracks down by class. Every configured
// class appears even when its count is zero.
func (d *Detector) ClassStats() map[string]ClassCount {
	d.mu.Lock()
	tracks := d.tracker.Tracks()
	d.mu.Unlock()

	counts := make(map[string]int, len(d.cfg.Classes))
	for _, cls := range d.cfg.Classes {
		counts[cls] = 0
	}
	for _, tr := range tracks {
		counts[tr.Type]++
	}

	out := make(map[string]ClassCount, len(counts))
	for cls, n := range counts {
		pct := 0.0
		if len(tracks) > 0 {
			pct = round1(float64(n) / float64(len(tracks)) * 100)
		}
		out[cls] = ClassCount{Count: n, Percentage: pct}
	}
	return out
}
