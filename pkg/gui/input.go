package gui

import (
	"github.com/go-drift/imui/pkg/rendering"
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseButtonCount
)

// Input is the raw, level-triggered input state written by the platform
// glue between frames.
type Input struct {
	Mouse   rendering.Offset
	Buttons [mouseButtonCount]bool
	// Scroll accumulates wheel movement until the next BeginFrame.
	Scroll rendering.Offset
}

type edges struct {
	prevButtons [mouseButtonCount]bool
	prevMouse   rendering.Offset
	down        [mouseButtonCount]bool
	up          [mouseButtonCount]bool
}

// Feedback is the result of the input pass, readable by builders during
// the frame.
type Feedback struct {
	Hovered WidgetID
	Pressed WidgetID
	// Dragged holds pointer capture from press to release.
	Dragged WidgetID
	// Clicked is the button clicked this frame.
	Clicked WidgetID
}

// InputEvent is passed to behaviour input handlers.
type InputEvent struct {
	Mouse  rendering.Offset
	Delta  rendering.Offset
	Scroll rendering.Offset
	Down   [mouseButtonCount]bool
	Up     [mouseButtonCount]bool
	Held   [mouseButtonCount]bool
	// Hit is the widget under the pointer, or the capturing widget.
	Hit WidgetID
}

// Cursor is the pointer shape the host should show.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorMove
)

// SetMousePosition records the pointer position in screen pixels.
func (c *Context) SetMousePosition(x, y float32) {
	c.input.Mouse = rendering.Offset{X: x, Y: y}
}

// SetMouseButton records whether b is held.
func (c *Context) SetMouseButton(b MouseButton, down bool) {
	if b < 0 || b >= mouseButtonCount {
		return
	}
	c.input.Buttons[b] = down
}

// AddScroll accumulates wheel movement. Negative dy scrolls towards the end
// of the content.
func (c *Context) AddScroll(dx, dy float32) {
	c.input.Scroll = c.input.Scroll.Add(rendering.Offset{X: dx, Y: dy})
}

// Feedback returns the input pass result for the current frame.
func (c *Context) Feedback() Feedback { return c.feedback }

// Hovered returns the widget under the pointer.
func (c *Context) Hovered() WidgetID { return c.feedback.Hovered }

// Pressed returns the widget the left button went down on, while held.
func (c *Context) Pressed() WidgetID { return c.feedback.Pressed }

// Dragged returns the widget holding pointer capture.
func (c *Context) Dragged() WidgetID { return c.feedback.Dragged }

// IsHovered reports whether id is under the pointer.
func (c *Context) IsHovered(id WidgetID) bool {
	return id != NullID && c.feedback.Hovered == id
}

// MouseDown reports a press edge this frame.
func (c *Context) MouseDown(b MouseButton) bool { return b >= 0 && b < mouseButtonCount && c.edges.down[b] }

// MouseUp reports a release edge this frame.
func (c *Context) MouseUp(b MouseButton) bool { return b >= 0 && b < mouseButtonCount && c.edges.up[b] }

// MouseHeld reports the level state of b.
func (c *Context) MouseHeld(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && c.input.Buttons[b]
}

// MousePosition returns the last pointer position.
func (c *Context) MousePosition() rendering.Offset { return c.input.Mouse }

// Cursor returns the pointer shape for the hovered or dragged widget.
func (c *Context) Cursor() Cursor {
	id := c.feedback.Dragged
	if id == NullID {
		id = c.feedback.Hovered
	}
	if !c.Lookup(id, TypeNone) {
		return CursorDefault
	}
	if c.titleDrag && id == c.feedback.Dragged {
		return CursorMove
	}
	return behaviors[c.widgets[id].Type].cursor
}

// processInput runs once at BeginFrame against the previous frame's
// layout. It derives button edges, resolves hover with drag capture,
// brings a pressed window to the front and dispatches handlers from the
// hit widget towards the root until one consumes the event.
func (c *Context) processInput() {
	e := &c.edges
	for b := range mouseButtonCount {
		held := c.input.Buttons[b]
		e.down[b] = held && !e.prevButtons[b]
		e.up[b] = !held && e.prevButtons[b]
		e.prevButtons[b] = held
	}
	ev := InputEvent{
		Mouse:  c.input.Mouse,
		Delta:  c.input.Mouse.Sub(e.prevMouse),
		Scroll: c.input.Scroll,
		Down:   e.down,
		Up:     e.up,
		Held:   c.input.Buttons,
	}
	e.prevMouse = c.input.Mouse
	c.input.Scroll = rendering.Offset{}

	f := &c.feedback
	if c.Lookup(f.Clicked, TypeNone) {
		c.widgets[f.Clicked].Flags &^= FlagClicked
	}
	f.Clicked = NullID
	if !c.Lookup(f.Pressed, TypeNone) {
		f.Pressed = NullID
	}

	if c.Lookup(f.Dragged, TypeNone) {
		ev.Hit = f.Dragged
	} else {
		f.Dragged = NullID
		if c.Lookup(c.root, TypeRoot) {
			ev.Hit = c.hitTest(c.root, ev.Mouse, c.widgets[c.root].Props.Computed.GlobalRect)
		}
	}
	f.Hovered = ev.Hit

	if ev.Down[MouseLeft] && ev.Hit != NullID {
		f.Pressed = ev.Hit
		if c.widgets[ev.Hit].Props.Input&InputDraggable != 0 {
			f.Dragged = ev.Hit
		}
		c.bringToFront(ev.Hit)
	}

	for id := ev.Hit; id != NullID; id = c.widgets[id].Hierarchy.Parent {
		handler := behaviors[c.widgets[id].Type].input
		if handler != nil && handler(c, id, &ev) {
			break
		}
	}

	if ev.Up[MouseLeft] {
		f.Pressed = NullID
		f.Dragged = NullID
		c.titleDrag = false
	}
}

// hitTest returns the deepest widget under p, testing later siblings
// first since they draw on top. Each widget is tested against its rect
// inflated by its mouse tolerance and limited to the accumulated clip.
// In-flow children are clipped to the parent's padded content box, the
// same clip Render draws them with. Parent-controlled children are
// clipped like their parent rather than by it.
func (c *Context) hitTest(id WidgetID, p rendering.Offset, clip rendering.Rect) WidgetID {
	w := &c.widgets[id]
	if w.ignored() {
		return NullID
	}
	rect := w.Props.Computed.GlobalRect
	inside := rect.Inflate(w.Props.MouseTolerance).Intersect(clip).Contains(p)
	inner := rect.Deflate(w.Props.Layout.Padding).Intersect(clip)
	for ch := w.Hierarchy.LastChild; ch != NullID; ch = c.widgets[ch].Hierarchy.PrevSibling {
		if c.widgets[ch].parentControlled() {
			if hit := c.hitTest(ch, p, clip); hit != NullID {
				return hit
			}
			continue
		}
		if !inside || inner.IsEmpty() {
			continue
		}
		if hit := c.hitTest(ch, p, inner); hit != NullID {
			return hit
		}
	}
	if inside && w.Props.Input&InputNoHit == 0 {
		return id
	}
	return NullID
}

// bringToFront raises the window containing id at the next layout pass.
func (c *Context) bringToFront(id WidgetID) {
	for ; id != NullID; id = c.widgets[id].Hierarchy.Parent {
		if c.widgets[id].Type == TypeWindow {
			c.widgets[id].Props.Layout.SortIndex = MaxSortIndex
			return
		}
	}
}
