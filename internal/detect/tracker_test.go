package detect

import (
	"testing"
	"time"

	"vigia/internal/api"
)

func testTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MaxDisappeared: 20,
		MaxDistance:    120,
		MinOverlap:     0.05,
	}
}

func TestTrackerRegistersNewDetections(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	now := time.Now()

	born := tr.Update(now, []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{100, 100, 200, 180}},
		{Type: api.VehicleMotorcycle, Confidence: 0.7, Box: BBox{400, 100, 470, 160}},
	})

	if len(born) != 2 {
		t.Fatalf("got %d new tracks, want 2", len(born))
	}
	if born[0].ID == born[1].ID {
		t.Error("new tracks should get distinct IDs")
	}
	if born[0].Confidence != 80.0 {
		t.Errorf("Confidence = %v, want 80.0", born[0].Confidence)
	}
	if born[0].Updates != 1 {
		t.Errorf("Updates = %d, want 1", born[0].Updates)
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestTrackerMatchesMovedDetection(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	now := time.Now()

	born := tr.Update(now, []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{100, 100, 200, 180}},
	})
	id := born[0].ID

	// Same car a few pixels on: must match, not register.
	later := now.Add(2 * time.Second)
	born = tr.Update(later, []Detection{
		{Type: api.VehicleCar, Confidence: 0.9, Box: BBox{110, 102, 210, 182}},
	})

	if len(born) != 0 {
		t.Fatalf("moved detection registered %d new tracks, want 0", len(born))
	}
	tracks := tr.Tracks()
	if len(tracks) != 1 {
		t.Fatalf("Len() = %d, want 1", len(tracks))
	}
	got := tracks[0]
	if got.ID != id {
		t.Errorf("ID changed from %d to %d", id, got.ID)
	}
	if got.Updates != 2 {
		t.Errorf("Updates = %d, want 2", got.Updates)
	}
	// Weighted blend: 0.7*80 + 0.3*90.
	if got.Confidence != 83.0 {
		t.Errorf("Confidence = %v, want 83.0", got.Confidence)
	}
	if !got.LastSeen.Equal(later) {
		t.Errorf("LastSeen = %v, want %v", got.LastSeen, later)
	}
	if !got.FirstSeen.Equal(now) {
		t.Errorf("FirstSeen should stay at registration time")
	}
}

func TestTrackerTypeGate(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	now := time.Now()

	tr.Update(now, []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{100, 100, 200, 180}},
	})

	// Same spot, different class: never the same object.
	born := tr.Update(now.Add(time.Second), []Detection{
		{Type: api.VehicleMotorcycle, Confidence: 0.8, Box: BBox{100, 100, 200, 180}},
	})

	if len(born) != 1 {
		t.Fatalf("got %d new tracks, want 1", len(born))
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestTrackerDistanceGate(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	now := time.Now()

	tr.Update(now, []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{0, 0, 100, 80}},
	})

	// Centroid jump far past MaxDistance.
	born := tr.Update(now.Add(time.Second), []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{400, 300, 500, 380}},
	})

	if len(born) != 1 {
		t.Fatalf("distant detection should register, got %d new tracks", len(born))
	}
}

func TestTrackerOverlapGate(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	now := time.Now()

	tr.Update(now, []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{100, 100, 160, 140}},
	})

	// Near enough by centroid but the boxes no longer overlap.
	born := tr.Update(now.Add(time.Second), []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{180, 150, 240, 190}},
	})

	if len(born) != 1 {
		t.Fatalf("non-overlapping detection should register, got %d new tracks", len(born))
	}
}

func TestTrackerGreedyPicksClosest(t *testing.T) {
	tr := NewTracker(testTrackerConfig())
	now := time.Now()

	born := tr.Update(now, []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{100, 100, 200, 180}},
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{300, 100, 400, 180}},
	})
	left, right := born[0].ID, born[1].ID

	// Both cars shift right a little; each must keep its own ID.
	born = tr.Update(now.Add(time.Second), []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{320, 100, 420, 180}},
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{120, 100, 220, 180}},
	})

	if len(born) != 0 {
		t.Fatalf("shifted pair registered %d new tracks, want 0", len(born))
	}
	for _, track := range tr.Tracks() {
		cx, _ := track.Box.Centroid()
		switch track.ID {
		case left:
			if cx > 250 {
				t.Errorf("left track drifted to centroid x=%v", cx)
			}
		case right:
			if cx < 250 {
				t.Errorf("right track drifted to centroid x=%v", cx)
			}
		default:
			t.Errorf("unexpected track id %d", track.ID)
		}
	}
}

func TestTrackerDropsAfterMaxDisappeared(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.MaxDisappeared = 3
	tr := NewTracker(cfg)
	now := time.Now()

	tr.Update(now, []Detection{
		{Type: api.VehicleCar, Confidence: 0.8, Box: BBox{100, 100, 200, 180}},
	})

	// Survives exactly MaxDisappeared empty frames.
	for i := 0; i < 3; i++ {
		tr.Update(now.Add(time.Duration(i)*time.Second), nil)
	}
	if tr.Len() != 1 {
		t.Fatalf("track dropped too early, Len() = %d", tr.Len())
	}

	tr.Update(now.Add(4*time.Second), nil)
	if tr.Len() != 0 {
		t.Errorf("track should be dropped after %d misses, Len() = %d", cfg.MaxDisappeared+1, tr.Len())
	}
}

func TestTrackerMatchResetsMisses(t *testing.T) {
	cfg := testTrackerConfig()
	cfg.MaxDisappeared = 2
	tr := NewTracker(cfg)
	now := time.Now()

	box := BBox{100, 100, 200, 180}
	tr.Update(now, []Detection{{Type: api.VehicleCar, Confidence: 0.8, Box: box}})

	tr.Update(now.Add(time.Second), nil)
	tr.Update(now.Add(2*time.Second), nil)
	tr.Update(now.Add(3*time.Second), []Detection{{Type: api.VehicleCar, Confidence: 0.8, Box: box}})

	// Misses were cleared by the match, so two more empty frames are
	// survivable again.
	tr.Update(now.Add(4*time.Second), nil)
	tr.Update(now.Add(5*time.Second), nil)
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestTrackExpired(t *testing.T) {
	now := time.Now()
	track := Track{LastSeen: now}

	if track.Expired(now.Add(9*time.Second), 10*time.Second) {
		t.Error("track expired too early")
	}
	if !track.Expired(now.Add(10*time.Second), 10*time.Second) {
		t.Error("track should expire at the boundary")
	}
}
