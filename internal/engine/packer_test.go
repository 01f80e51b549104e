package engine

import (
	"testing"

	"github.com/artfoundry/canvaspack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertInvariants verifies the full set of placement invariants for a
// returned rectangle set: canvas containment, no strict overlap, minimum gap
// between non-nested pairs, and minimum margin for nested pairs.
func assertInvariants(t *testing.T, rects []model.Rect, width, height, gap float64) {
	t.Helper()

	for i, r := range rects {
		assert.GreaterOrEqual(t, r.X, 0.0, "rect %d left edge", i)
		assert.GreaterOrEqual(t, r.Y, 0.0, "rect %d top edge", i)
		assert.LessOrEqual(t, r.Right(), width+1e-9, "rect %d right edge", i)
		assert.LessOrEqual(t, r.Bottom(), height+1e-9, "rect %d bottom edge", i)
		assert.Greater(t, r.W, 0.0, "rect %d width", i)
		assert.Greater(t, r.H, 0.0, "rect %d height", i)
	}

	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			assert.False(t, a.Overlaps(b), "rects %d and %d overlap", i, j)

			switch {
			case a.Contains(b):
				assert.True(t, ContainedWithMargin(a, b, gap),
					"rect %d nested in %d without margin", j, i)
			case b.Contains(a):
				assert.True(t, ContainedWithMargin(b, a, gap),
					"rect %d nested in %d without margin", i, j)
			default:
				assert.GreaterOrEqual(t, EdgeDistance(a, b), gap,
					"rects %d and %d closer than gap", i, j)
			}
		}
	}
}

func TestPack_ZeroCountReturnsEmpty(t *testing.T) {
	p := New(DefaultPackSettings(), 1)
	rects := p.Pack(100, 100, 0, 10, 20)
	assert.Empty(t, rects)
}

func TestPack_AmpleRoomPlacesAll(t *testing.T) {
	p := New(DefaultPackSettings(), 42)
	rects := p.Pack(1000, 1000, 50, 10, 20)

	require.Len(t, rects, 50, "ample canvas should fit every rectangle")
	assertInvariants(t, rects, 1000, 1000, 2.0)
}

func TestPack_RectLargerThanCanvas(t *testing.T) {
	p := New(DefaultPackSettings(), 7)
	rects := p.Pack(20, 20, 5, 25, 30)

	// Oversized candidates are clamped to the canvas; after the first
	// placement nothing else can respect the gap, so at most one fits.
	assert.LessOrEqual(t, len(rects), 1)
	assertInvariants(t, rects, 20, 20, 2.0)
}

func TestPack_DenseCanvasDegradesGracefully(t *testing.T) {
	// Far more area requested than the canvas holds: the packer must
	// terminate within its budget and return a valid partial set.
	p := New(DefaultPackSettings(), 3)
	rects := p.Pack(100, 100, 200, 30, 40)

	assert.Less(t, len(rects), 200, "saturated canvas cannot fit the request")
	assert.Greater(t, len(rects), 0, "at least one rectangle fits")
	assertInvariants(t, rects, 100, 100, 2.0)
}

func TestPack_ResultNeverExceedsCount(t *testing.T) {
	p := New(DefaultPackSettings(), 11)
	rects := p.Pack(500, 500, 10, 10, 30)
	assert.LessOrEqual(t, len(rects), 10)
}

func TestPack_SeedReproducible(t *testing.T) {
	a := New(DefaultPackSettings(), 99).Pack(400, 300, 20, 10, 40)
	b := New(DefaultPackSettings(), 99).Pack(400, 300, 20, 10, 40)
	assert.Equal(t, a, b, "same seed must reproduce the same placement")
}

func TestPack_DifferentSeedsStillValid(t *testing.T) {
	// Output varies with the seed, but every run independently satisfies
	// the invariants.
	for seed := int64(0); seed < 8; seed++ {
		rects := New(DefaultPackSettings(), seed).Pack(300, 300, 25, 8, 25)
		assertInvariants(t, rects, 300, 300, 2.0)
	}
}

func TestPack_SizesWithinBounds(t *testing.T) {
	p := New(DefaultPackSettings(), 5)
	rects := p.Pack(1000, 1000, 40, 15, 35)

	for _, r := range rects {
		assert.GreaterOrEqual(t, r.W, 15.0)
		assert.LessOrEqual(t, r.W, 35.0)
		assert.GreaterOrEqual(t, r.H, 15.0)
		assert.LessOrEqual(t, r.H, 35.0)
		assert.Equal(t, r.W, float64(int(r.W)), "width should be an integer")
		assert.Equal(t, r.H, float64(int(r.H)), "height should be an integer")
	}
}

func TestPack_FixedSize(t *testing.T) {
	// minSize == maxSize: every rectangle has exactly that size.
	p := New(DefaultPackSettings(), 13)
	rects := p.Pack(500, 500, 10, 20, 20)

	require.NotEmpty(t, rects)
	for _, r := range rects {
		assert.Equal(t, 20.0, r.W)
		assert.Equal(t, 20.0, r.H)
	}
}

func TestPack_ZeroGapStillForbidsContact(t *testing.T) {
	settings := PackSettings{Gap: 0, MaxAttemptsPerRect: 500}
	rects := New(settings, 21).Pack(200, 200, 60, 10, 20)

	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.Contains(b) || b.Contains(a) {
				continue
			}
			assert.False(t, a.Overlaps(b))
			assert.Greater(t, EdgeDistance(a, b), 0.0,
				"touching rectangles must be rejected even at gap 0")
		}
	}
}

func TestPack_DegenerateCanvas(t *testing.T) {
	p := New(DefaultPackSettings(), 1)
	assert.Empty(t, p.Pack(0, 100, 10, 5, 10))
	assert.Empty(t, p.Pack(100, -1, 10, 5, 10))
}

func TestPack_NegativeCount(t *testing.T) {
	p := New(DefaultPackSettings(), 1)
	assert.Empty(t, p.Pack(100, 100, -3, 5, 10))
}

func TestNew_NormalizesSettings(t *testing.T) {
	p := New(PackSettings{Gap: -5, MaxAttemptsPerRect: 0}, 1)
	assert.Equal(t, 0.0, p.Gap())

	// Zero budget falls back to the default so Pack still terminates with
	// a useful result.
	rects := p.Pack(500, 500, 5, 10, 20)
	assert.Len(t, rects, 5)
}

func TestPackBest_PrefersHigherCount(t *testing.T) {
	settings := DefaultPackSettings()

	// On a tight canvas single runs often fall short; the multi-candidate
	// search must do at least as well as any single seeded run.
	single := New(settings, 50).Pack(150, 150, 40, 20, 30)
	best := PackBest(settings, 50, 8, 150, 150, 40, 20, 30)

	assert.GreaterOrEqual(t, len(best), len(single))
	assertInvariants(t, best, 150, 150, settings.Gap)
}

func TestPackBest_SingleCandidate(t *testing.T) {
	settings := DefaultPackSettings()
	best := PackBest(settings, 9, 1, 400, 400, 10, 10, 30)
	want := New(settings, 9).Pack(400, 400, 10, 10, 30)
	assert.Equal(t, want, best)
}

func TestPackBest_ZeroCandidatesTreatedAsOne(t *testing.T) {
	best := PackBest(DefaultPackSettings(), 9, 0, 400, 400, 5, 10, 30)
	assert.Len(t, best, 5)
}

func TestFits_AcceptsNestedCandidate(t *testing.T) {
	p := New(DefaultPackSettings(), 1)
	placed := []model.Rect{{X: 0, Y: 0, W: 50, H: 50}}

	// 10px margin on every side: the packer must accept the nested candidate.
	assert.True(t, p.fits(model.Rect{X: 10, Y: 10, W: 20, H: 20}, placed))

	// Flush with the outer left edge: margin 0 on that side.
	assert.False(t, p.fits(model.Rect{X: 0, Y: 10, W: 20, H: 20}, placed))
}

func TestPack_ProducesNestedPlacements(t *testing.T) {
	settings := DefaultPackSettings()

	// A size range spanning the whole canvas forces later small rects to
	// land inside earlier large ones.
	found := false
	for seed := int64(0); seed < 50 && !found; seed++ {
		rects := New(settings, seed).Pack(100, 100, 30, 10, 100)
		assertInvariants(t, rects, 100, 100, settings.Gap)

		for i := range rects {
			for j := range rects {
				if i != j && rects[i].Contains(rects[j]) {
					assert.True(t, ContainedWithMargin(rects[i], rects[j], settings.Gap),
						"nested pair must keep the margin")
					found = true
				}
			}
		}
	}
	assert.True(t, found, "no nested placement produced across 50 seeds")
}
