package engine

import (
	"math"

	"github.com/artfoundry/canvaspack/internal/model"
)

// EdgeDistance returns the minimum Euclidean distance between the borders of
// two non-overlapping rectangles. Separation along an axis counts as zero
// when the projections on that axis overlap, so rectangles side by side are
// measured edge to edge and diagonal neighbors corner to corner.
func EdgeDistance(a, b model.Rect) float64 {
	dx := math.Max(0, math.Max(a.X-b.Right(), b.X-a.Right()))
	dy := math.Max(0, math.Max(a.Y-b.Bottom(), b.Y-a.Bottom()))
	return math.Sqrt(dx*dx + dy*dy)
}

// ContainedWithMargin reports whether inner lies inside outer with at least
// margin between every side of inner and the corresponding side of outer.
func ContainedWithMargin(outer, inner model.Rect, margin float64) bool {
	return inner.X-outer.X >= margin &&
		inner.Y-outer.Y >= margin &&
		outer.Right()-inner.Right() >= margin &&
		outer.Bottom()-inner.Bottom() >= margin
}

// ValidPair checks the placement invariants for one pair of rectangles:
// nesting only with at least gap of margin on every side, no strict
// interior overlap otherwise, and a border-to-border distance of at least
// gap for disjoint pairs.
func ValidPair(a, b model.Rect, gap float64) bool {
	// Containment must be tested before overlap: a nested rectangle's
	// interior always intersects its container's. Sufficient margin is
	// conclusive for the pair.
	if a.Contains(b) {
		return ContainedWithMargin(a, b, gap)
	}
	if b.Contains(a) {
		return ContainedWithMargin(b, a, gap)
	}

	if a.Overlaps(b) {
		return false
	}

	dist := EdgeDistance(a, b)
	// Rectangles sharing exactly a border point or edge are rejected even
	// when gap is zero; contact without nesting is never allowed.
	if dist == 0 {
		return false
	}
	return dist >= gap
}
