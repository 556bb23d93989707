package detect

import "math"

// BBox is an axis-aligned bounding box in frame coordinates.
type BBox struct {
	X1, Y1, X2, Y2 float64
}

// Centroid returns the box center.
func (b BBox) Centroid() (float64, float64) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Area returns the box area, zero for degenerate boxes.
func (b BBox) Area() float64 {
	w := b.X2 - b.X1
	h := b.Y2 - b.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CentroidDistance returns the euclidean distance between box centers.
func (b BBox) CentroidDistance(o BBox) float64 {
	bx, by := b.Centroid()
	ox, oy := o.Centroid()
	return math.Hypot(bx-ox, by-oy)
}

// IoU returns the intersection-over-union of two boxes, 0 when they
// do not overlap.
func IoU(a, b BBox) float64 {
	x1 := math.Max(a.X1, b.X1)
	y1 := math.Max(a.Y1, b.Y1)
	x2 := math.Min(a.X2, b.X2)
	y2 := math.Min(a.Y2, b.Y2)

	if x2 < x1 || y2 < y1 {
		return 0
	}
	inter := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
