package ui

import (
	"fmt"
	"testing"

	"github.com/artfoundry/canvaspack/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	// Push initial state (before generating)
	snap0 := MakeSnapshot(model.DefaultConfig(), nil, "initial")
	h.Push(snap0)

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	// Current state has one placed rectangle
	currentRects := []model.Rect{{X: 10, Y: 10, W: 40, H: 30}}
	current := MakeSnapshot(model.DefaultConfig(), currentRects, "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Rects) != 0 {
		t.Errorf("expected 0 rects after undo, got %d", len(restored.Rects))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	// State 0: empty canvas
	snap0 := MakeSnapshot(model.DefaultConfig(), nil, "empty")
	h.Push(snap0)

	// State 1: one rect
	rects1 := []model.Rect{{X: 10, Y: 10, W: 40, H: 30}}
	snap1 := MakeSnapshot(model.DefaultConfig(), rects1, "one rect")
	h.Push(snap1)

	// Current state: two rects
	rects2 := []model.Rect{
		{X: 10, Y: 10, W: 40, H: 30},
		{X: 100, Y: 50, W: 20, H: 60},
	}
	current := MakeSnapshot(model.DefaultConfig(), rects2, "two rects")

	// Undo to one rect
	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Rects) != 1 {
		t.Errorf("expected 1 rect, got %d", len(restored.Rects))
	}

	// Redo back to two rects
	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Rects) != 2 {
		t.Errorf("expected 2 rects after redo, got %d", len(redone.Rects))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	snap0 := MakeSnapshot(model.DefaultConfig(), nil, "empty")
	h.Push(snap0)

	rects1 := []model.Rect{{X: 10, Y: 10, W: 40, H: 30}}
	current := MakeSnapshot(model.DefaultConfig(), rects1, "one rect")

	// Undo
	_, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	// Push new state clears redo
	snap2 := MakeSnapshot(model.DefaultConfig(), nil, "new action")
	h.Push(snap2)
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(model.DefaultConfig(), nil, fmt.Sprintf("snap %d", i)))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack trimmed to 3, got %d", len(h.undoStack))
	}
	// Oldest snapshots dropped, newest kept
	if h.undoStack[2].Label != "snap 4" {
		t.Errorf("expected newest snapshot kept, got %q", h.undoStack[2].Label)
	}
	if h.undoStack[0].Label != "snap 2" {
		t.Errorf("expected oldest kept snapshot 'snap 2', got %q", h.undoStack[0].Label)
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(model.DefaultConfig(), nil, "a"))
	_, _ = h.Undo(MakeSnapshot(model.DefaultConfig(), nil, "b"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("history should be empty after Clear")
	}
}

func TestSnapshotDeepCopiesZones(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Zones = []model.Zone{model.NewCircleZone(100, 100, 50, "#ff0000")}

	snap := MakeSnapshot(cfg, nil, "with zone")

	// Mutating the original must not affect the snapshot
	cfg.Zones[0].Color = "#00ff00"

	if snap.Config.Zones[0].Color != "#ff0000" {
		t.Errorf("snapshot zone color changed to %s, want #ff0000", snap.Config.Zones[0].Color)
	}
}

func TestSnapshotDeepCopiesRects(t *testing.T) {
	rects := []model.Rect{{X: 1, Y: 2, W: 3, H: 4}}
	snap := MakeSnapshot(model.DefaultConfig(), rects, "rects")

	rects[0].X = 99

	if snap.Rects[0].X != 1 {
		t.Errorf("snapshot rect mutated: X = %f, want 1", snap.Rects[0].X)
	}
}
