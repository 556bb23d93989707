// Package detect tracks vehicles across frames by matching fresh
// detections against known objects on centroid distance and box
// overlap.
package detect

import (
	"math"
	"time"
)

// costInvalid marks track/detection pairs that can never match.
const costInvalid = 999.0

// Detection is one raw observation from a frame source. Confidence is
// on the 0..1 scale.
type Detection struct {
	Type       string
	Confidence float64
	Box        BBox
}

// Track is one vehicle followed across frames. Confidence is a
// smoothed percentage, updated on every successful match.
type Track struct {
	ID         int64
	Type       string
	Confidence float64
	Box        BBox
	FirstSeen  time.Time
	LastSeen   time.Time
	Updates    int

	misses int
}

// Expired reports whether the track has gone unseen for at least the
// given duration.
func (t Track) Expired(now time.Time, after time.Duration) bool {
	return now.Sub(t.LastSeen) >= after
}

// TrackerConfig bounds the matching step.
type TrackerConfig struct {
	// MaxDisappeared is how many consecutive missed frames a track
	// survives before it is dropped.
	MaxDisappeared int
	// MaxDistance is the largest centroid distance that still counts
	// as the same object.
	MaxDistance float64
	// MinOverlap is the minimum IoU required for a match.
	MinOverlap float64
}

// Tracker assigns stable integer IDs to detections over time. It is
// not safe for concurrent use; the owning Detector serializes access.
type Tracker struct {
	cfg    TrackerConfig
	nextID int64
	tracks []*Track
}

func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{cfg: cfg}
}

// Update matches detections against known tracks and returns the
// newly registered ones. Unmatched tracks accumulate misses and are
// dropped once they exceed MaxDisappeared.
func (t *Tracker) Update(now time.Time, detections []Detection) []*Track {
	if len(detections) == 0 {
		t.prune(nil)
		return nil
	}

	if len(t.tracks) == 0 {
		born := make([]*Track, 0, len(detections))
		for _, det := range detections {
			born = append(born, t.register(now, det))
		}
		return born
	}

	cost := make([][]float64, len(t.tracks))
	for i, tr := range t.tracks {
		cost[i] = make([]float64, len(detections))
		for j, det := range detections {
			cost[i][j] = t.matchCost(tr, det)
		}
	}

	matchedTrack := make([]bool, len(t.tracks))
	matchedDet := make([]bool, len(detections))

	// Greedy assignment: repeatedly take the cheapest remaining pair
	// until nothing acceptable is left.
	rounds := len(t.tracks)
	if len(detections) < rounds {
		rounds = len(detections)
	}
	for n := 0; n < rounds; n++ {
		best := math.Inf(1)
		bi, bj := -1, -1
		for i := range t.tracks {
			if matchedTrack[i] {
				continue
			}
			for j := range detections {
				if matchedDet[j] {
					continue
				}
				if cost[i][j] < best {
					best = cost[i][j]
					bi, bj = i, j
				}
			}
		}
		if bi < 0 || best >= 1.0 {
			break
		}
		t.tracks[bi].absorb(now, detections[bj])
		matchedTrack[bi] = true
		matchedDet[bj] = true
	}

	t.prune(matchedTrack)

	var born []*Track
	for j, det := range detections {
		if !matchedDet[j] {
			born = append(born, t.register(now, det))
		}
	}
	return born
}

// matchCost scores a candidate pairing. Distance dominates, overlap
// refines; pairs past the hard gates are unmatchable.
func (t *Tracker) matchCost(tr *Track, det Detection) float64 {
	if tr.Type != det.Type {
		return costInvalid
	}
	dist := tr.Box.CentroidDistance(det.Box)
	if dist > t.cfg.MaxDistance {
		return costInvalid
	}
	overlap := IoU(tr.Box, det.Box)
	if overlap < t.cfg.MinOverlap {
		return costInvalid
	}
	return 0.6*(dist/t.cfg.MaxDistance) + 0.4*(1-overlap)
}

func (t *Tracker) register(now time.Time, det Detection) *Track {
	t.nextID++
	tr := &Track{
		ID:         t.nextID,
		Type:       det.Type,
		Confidence: round1(det.Confidence * 100),
		Box:        det.Box,
		FirstSeen:  now,
		LastSeen:   now,
		Updates:    1,
	}
	t.tracks = append(t.tracks, tr)
	return tr
}

// prune counts a miss against every unmatched track and drops the
// ones that ran out. matched may be nil when no detections arrived.
func (t *Tracker) prune(matched []bool) {
	kept := t.tracks[:0]
	for i, tr := range t.tracks {
		if matched != nil && matched[i] {
			kept = append(kept, tr)
			continue
		}
		tr.misses++
		if tr.misses > t.cfg.MaxDisappeared {
			continue
		}
		kept = append(kept, tr)
	}
	t.tracks = kept
}

// Tracks returns copies of all current tracks in registration order.
func (t *Tracker) Tracks() []Track {
	out := make([]Track, len(t.tracks))
	for i, tr := range t.tracks {
		out[i] = *tr
	}
	return out
}

// Len returns the number of tracked objects.
func (t *Tracker) Len() int {
	return len(t.tracks)
}

func (tr *Track) absorb(now time.Time, det Detection) {
	tr.Box = det.Box
	tr.Confidence = round1(0.7*tr.Confidence + 0.3*det.Confidence*100)
	tr.LastSeen = now
	tr.Updates++
	tr.misses = 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
