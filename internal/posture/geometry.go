package posture

import (
	"math"

	"github.com/ayusman/hoopform/internal/detector"
)

// AngleBetween returns the angle in degrees at vertex b formed by the rays
// b->a and b->c, in [0, 180]. The result is NaN when a or c coincides with b;
// callers are expected to have checked the points are present and distinct.
func AngleBetween(a, b, c detector.Landmark) float64 {
	v1x, v1y := a.X-b.X, a.Y-b.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y

	dot := v1x*v2x + v1y*v2y
	mag1 := math.Sqrt(v1x*v1x + v1y*v1y)
	mag2 := math.Sqrt(v2x*v2x + v2y*v2y)

	// Rounding can push the cosine of collinear points just past +-1.
	cos := math.Max(-1, math.Min(1, dot/(mag1*mag2)))

	return math.Acos(cos) * 180 / math.Pi
}

// HorizontalGap is the absolute x distance between two landmarks.
func HorizontalGap(a, b detector.Landmark) float64 {
	return math.Abs(a.X - b.X)
}

// VerticalGap is the absolute y distance between two landmarks.
func VerticalGap(a, b detector.Landmark) float64 {
	return math.Abs(a.Y - b.Y)
}

// landmarks fetches every requested index from set. ok is false as soon as
// one of them is missing.
func landmarks(set *detector.LandmarkSet, indices ...int) ([]detector.Landmark, bool) {
	out := make([]detector.Landmark, len(indices))
	for i, idx := range indices {
		lm, ok := set.Get(idx)
		if !ok {
			return nil, false
		}
		out[i] = lm
	}
	return out, true
}
