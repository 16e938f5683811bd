package testing

import (
	"fmt"

	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

// Input is applied at BeginFrame against the previous layout, so every
// step below sets the input state and pumps one frame.

// Tap simulates a left click at the center of the first widget matched by
// finder.
func (h *Harness) Tap(finder Finder) error {
	result := h.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no widgets: %s", finder.Description())
	}
	return h.TapAt(result.Rect().Center())
}

// TapAt simulates a left click at pos: move, press and release, one frame
// each.
func (h *Harness) TapAt(pos rendering.Offset) error {
	if err := h.MoveTo(pos); err != nil {
		return err
	}
	if err := h.SendButton(gui.MouseLeft, true); err != nil {
		return err
	}
	return h.SendButton(gui.MouseLeft, false)
}

// Drag simulates a left-button drag from the center of the first widget
// matched by finder.
func (h *Harness) Drag(finder Finder, delta rendering.Offset) error {
	result := h.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Drag: finder matched no widgets: %s", finder.Description())
	}
	return h.DragFrom(result.Rect().Center(), delta)
}

// DragFrom simulates a left-button drag from start by delta.
func (h *Harness) DragFrom(start, delta rendering.Offset) error {
	if err := h.MoveTo(start); err != nil {
		return err
	}
	if err := h.SendButton(gui.MouseLeft, true); err != nil {
		return err
	}
	if err := h.MoveTo(start.Add(delta)); err != nil {
		return err
	}
	return h.SendButton(gui.MouseLeft, false)
}

// ScrollAt moves the pointer to pos and sends wheel movement dy.
func (h *Harness) ScrollAt(pos rendering.Offset, dy float32) error {
	h.ctx.SetMousePosition(pos.X, pos.Y)
	h.ctx.AddScroll(0, dy)
	return h.Pump()
}

// MoveTo moves the pointer and pumps a frame.
func (h *Harness) MoveTo(pos rendering.Offset) error {
	h.ctx.SetMousePosition(pos.X, pos.Y)
	return h.Pump()
}

// SendButton sets button b and pumps a frame.
func (h *Harness) SendButton(b gui.MouseButton, down bool) error {
	h.ctx.SetMouseButton(b, down)
	return h.Pump()
}
