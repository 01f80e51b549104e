package engine

import "github.com/artfoundry/canvaspack/internal/model"

// PackBest runs n independent packing attempts with derived seeds and keeps
// the best one: the candidate placing the most rectangles, ties broken by
// covered area. Every candidate independently satisfies the placement
// invariants, so the selection only improves how close the result gets to
// the requested count on dense canvases.
func PackBest(settings PackSettings, seed int64, n int, width, height float64, count, minSize, maxSize int) []model.Rect {
	if n < 1 {
		n = 1
	}

	var best []model.Rect
	bestArea := -1.0

	for i := 0; i < n; i++ {
		packer := New(settings, seed+int64(i))
		rects := packer.Pack(width, height, count, minSize, maxSize)

		area := coveredArea(rects)
		if len(rects) > len(best) || (len(rects) == len(best) && area > bestArea) {
			best = rects
			bestArea = area
		}
		// A full result cannot be improved on count; keep the first one.
		if len(best) == count {
			break
		}
	}
	return best
}

func coveredArea(rects []model.Rect) float64 {
	var total float64
	for _, r := range rects {
		total += r.Area()
	}
	return total
}
