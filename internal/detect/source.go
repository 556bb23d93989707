package detect

import (
	"math/rand/v2"

	"vigia/internal/api"
)

// FrameSource yields the detections for one frame. Next is called
// once per frame tick from the detection loop.
type FrameSource interface {
	Next() []Detection
}

// SimulatedSource fabricates detections without a camera: every third
// frame produces one to three vehicles at random positions with
// confidence between 0.6 and 0.95.
type SimulatedSource struct {
	rng     *rand.Rand
	classes []string
	frame   int
}

func NewSimulatedSource(seed uint64) *SimulatedSource {
	return &SimulatedSource{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		classes: []string{api.VehicleCar, api.VehicleMotorcycle},
	}
}

func (s *SimulatedSource) Next() []Detection {
	s.frame++
	if s.frame%3 != 0 {
		return nil
	}

	n := 1 + s.rng.IntN(3)
	dets := make([]Detection, 0, n)
	for i := 0; i < n; i++ {
		x1 := float64(50 + s.rng.IntN(451))
		y1 := float64(50 + s.rng.IntN(301))
		w := float64(60 + s.rng.IntN(91))
		h := float64(40 + s.rng.IntN(61))
		dets = append(dets, Detection{
			Type:       s.classes[s.rng.IntN(len(s.classes))],
			Confidence: 0.6 + 0.35*s.rng.Float64(),
			Box:        BBox{X1: x1, Y1: y1, X2: x1 + w, Y2: y1 + h},
		})
	}
	return dets
}
