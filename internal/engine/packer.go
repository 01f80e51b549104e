// Package engine implements the randomized rectangle packer: bounded
// rejection sampling that places axis-aligned rectangles onto a canvas while
// keeping a minimum gap between neighbors and a minimum margin around
// nested rectangles.
package engine

import (
	"math/rand"
	"time"

	"github.com/artfoundry/canvaspack/internal/model"
)

// PackSettings holds the packer's invariant parameters.
type PackSettings struct {
	// Gap is the minimum border-to-border distance between two placed
	// rectangles, and the minimum per-side margin when one rectangle is
	// nested inside another.
	Gap float64 `json:"gap"`

	// MaxAttemptsPerRect bounds the random search: a single Pack call makes
	// at most count * MaxAttemptsPerRect placement attempts.
	MaxAttemptsPerRect int `json:"max_attempts_per_rect"`
}

// DefaultPackSettings returns the standard gap and retry budget.
func DefaultPackSettings() PackSettings {
	return PackSettings{
		Gap:                2.0,
		MaxAttemptsPerRect: 500,
	}
}

// Packer places rectangles using randomized greedy placement with a retry
// budget. Each Packer owns a private random source, so independent Packers
// may run concurrently; a single Packer is not safe for concurrent use.
type Packer struct {
	settings PackSettings
	rng      *rand.Rand
}

// New creates a Packer with the given settings and seed. The same seed
// reproduces the same placement sequence.
func New(settings PackSettings, seed int64) *Packer {
	if settings.MaxAttemptsPerRect <= 0 {
		settings.MaxAttemptsPerRect = DefaultPackSettings().MaxAttemptsPerRect
	}
	if settings.Gap < 0 {
		settings.Gap = 0
	}
	return &Packer{
		settings: settings,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// NewRandom creates a time-seeded Packer.
func NewRandom(settings PackSettings) *Packer {
	return New(settings, time.Now().UnixNano())
}

// Pack places up to count rectangles with integer side lengths drawn
// uniformly from [minSize, maxSize], positioned uniformly at random within
// the canvas. Candidates violating the gap or containment invariants against
// any already-placed rectangle are rejected and redrawn. Pack returns after
// at most count*MaxAttemptsPerRect attempts; running out of attempts yields
// a shorter result, which the caller must treat as a normal outcome.
func (p *Packer) Pack(width, height float64, count, minSize, maxSize int) []model.Rect {
	if count <= 0 || width <= 0 || height <= 0 {
		return []model.Rect{}
	}
	placed := make([]model.Rect, 0, count)

	ceiling := count * p.settings.MaxAttemptsPerRect
	for attempts := 0; len(placed) < count && attempts < ceiling; attempts++ {
		cand := p.drawCandidate(width, height, minSize, maxSize)
		if p.fits(cand, placed) {
			placed = append(placed, cand)
		}
	}
	return placed
}

// drawCandidate samples one rectangle that lies fully within the canvas.
// Sides larger than the canvas are clamped to it, so a degenerate request
// (minSize exceeding the canvas) still yields a placeable candidate.
func (p *Packer) drawCandidate(width, height float64, minSize, maxSize int) model.Rect {
	w := float64(p.intBetween(minSize, maxSize))
	h := float64(p.intBetween(minSize, maxSize))
	if w > width {
		w = width
	}
	if h > height {
		h = height
	}

	x := p.rng.Float64() * (width - w)
	y := p.rng.Float64() * (height - h)
	return model.Rect{X: x, Y: y, W: w, H: h}
}

// intBetween returns a uniform integer in [lo, hi] inclusive.
func (p *Packer) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Intn(hi-lo+1)
}

// fits validates a candidate against every placed rectangle,
// short-circuiting on the first violation.
func (p *Packer) fits(cand model.Rect, placed []model.Rect) bool {
	for _, r := range placed {
		if !ValidPair(cand, r, p.settings.Gap) {
			return false
		}
	}
	return true
}

// Gap returns the configured minimum gap.
func (p *Packer) Gap() float64 {
	return p.settings.Gap
}
