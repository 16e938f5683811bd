package gui

import (
	"github.com/go-drift/imui/pkg/rendering"
	"github.com/go-drift/imui/pkg/theme"
)

// behavior is the per-type hook pair. input returns true when it consumed
// the event, which stops propagation to the parent.
type behavior struct {
	input  func(c *Context, id WidgetID, ev *InputEvent) bool
	render func(rc *RenderContext)
	cursor Cursor
}

var behaviors [typeCount]behavior

func init() {
	behaviors[TypeWindow] = behavior{input: windowInput, render: renderWindow}
	behaviors[TypeContainer] = behavior{render: renderContainer}
	behaviors[TypeButton] = behavior{input: buttonInput, render: renderButton, cursor: CursorPointer}
	behaviors[TypeLabel] = behavior{render: renderLabel}
	behaviors[TypeScrollbar] = behavior{input: scrollbarInput, render: renderScrollbar, cursor: CursorPointer}
	behaviors[TypeCustom] = behavior{render: renderCustom}
}

func (c *Context) titleHeight(id WidgetID) float32 {
	if c.widgets[id].Props.Text == "" {
		return 0
	}
	return c.theme.Pixels(theme.StyleWindowTitleHeight)
}

func windowInput(c *Context, id WidgetID, ev *InputEvent) bool {
	w := &c.widgets[id]
	rect := w.Props.Computed.GlobalRect
	switch {
	case ev.Down[MouseLeft]:
		if ev.Hit != id {
			return false
		}
		c.titleDrag = ev.Mouse.Y < rect.Top+c.titleHeight(id)
		return true
	case ev.Held[MouseLeft] && c.feedback.Dragged == id:
		if c.titleDrag {
			w.Props.Layout.Position = w.Props.Layout.Position.Add(ev.Delta)
		}
		return true
	case ev.Scroll.Y != 0:
		if w.Props.Layout.Flags&LayoutAllowOverflowY == 0 {
			return false
		}
		c.scrollBy(id, -ev.Scroll.Y)
		return true
	}
	return false
}

func buttonInput(c *Context, id WidgetID, ev *InputEvent) bool {
	switch {
	case ev.Down[MouseLeft]:
		return true
	case ev.Up[MouseLeft] && c.feedback.Pressed == id:
		w := &c.widgets[id]
		if w.Props.Computed.GlobalRect.Inflate(w.Props.MouseTolerance).Contains(ev.Mouse) {
			w.Flags |= FlagClicked
			c.feedback.Clicked = id
		}
		return true
	}
	return false
}

// scrollbarInput scrolls the parent window by the pointer movement scaled
// from track to content height.
func scrollbarInput(c *Context, id WidgetID, ev *InputEvent) bool {
	switch {
	case ev.Down[MouseLeft]:
		return true
	case ev.Held[MouseLeft] && c.feedback.Dragged == id:
		w := &c.widgets[id]
		track := w.Props.Computed.Size.Height
		if track > 0 && w.Props.Min > 0 {
			c.scrollBy(w.Hierarchy.Parent, ev.Delta.Y*w.Props.Max/track)
		}
		return true
	}
	return false
}

func renderWindow(rc *RenderContext) {
	c := rc.ctx
	w := rc.Widget()
	b := rc.Bounds()
	rc.DrawRectangle(b, w.Props.Background)
	if th := c.titleHeight(rc.id); th > 0 {
		bar := rendering.RectFromLTWH(0, 0, b.Width(), th)
		rc.DrawRectangle(bar, c.theme.Color(theme.StyleWindowTitleBackground))
		pad := c.theme.Pixels(theme.StyleWindowPadding)
		y := (th - rc.LineHeight(w.Props.Font)) / 2
		rc.DrawText(rendering.Offset{X: pad, Y: y}, w.Props.Text, w.Props.Font, w.Props.Foreground)
	}
	rc.DrawBorder(b, w.Props.BorderWidth, w.Props.Border)
}

func renderContainer(rc *RenderContext) {
	w := rc.Widget()
	rc.DrawRectangle(rc.Bounds(), w.Props.Background)
	rc.DrawBorder(rc.Bounds(), w.Props.BorderWidth, w.Props.Border)
}

func renderButton(rc *RenderContext) {
	c := rc.ctx
	w := rc.Widget()
	hovered := c.feedback.Hovered == rc.id
	pressed := hovered && c.feedback.Pressed == rc.id
	rc.DrawRectangle(rc.Bounds(), c.theme.Interactive(theme.StyleButtonBackground, hovered, pressed))
	rc.DrawBorder(rc.Bounds(), w.Props.BorderWidth, w.Props.Border)
	rc.DrawTextCentered(rc.Bounds(), w.Props.Text, w.Props.Font, w.Props.Foreground)
}

func renderLabel(rc *RenderContext) {
	w := rc.Widget()
	p := w.Props.Layout.Padding
	rc.DrawRectangle(rc.Bounds(), w.Props.Background)
	rc.DrawText(rendering.Offset{X: p.Left, Y: p.Top}, w.Props.Text, w.Props.Font, w.Props.Foreground)
}

// renderScrollbar draws the track and a thumb sized by the visible share
// of the content. Min holds the view height and Max the content height.
func renderScrollbar(rc *RenderContext) {
	c := rc.ctx
	w := rc.Widget()
	b := rc.Bounds()
	rc.DrawRectangle(b, c.theme.Color(theme.StyleScrollbarTrack))

	view, content := w.Props.Min, w.Props.Max
	if content <= view || content <= 0 {
		return
	}
	track := b.Height()
	thumb := max(c.theme.Pixels(theme.StyleScrollbarMinThumb), track*view/content)
	thumb = min(thumb, track)
	y := (track - thumb) * w.Props.Value / (content - view)
	hovered := c.feedback.Hovered == rc.id
	pressed := c.feedback.Dragged == rc.id
	color := c.theme.Interactive(theme.StyleScrollbarThumb, hovered, pressed)
	rc.DrawRectangle(rendering.RectFromLTWH(0, y, b.Width(), thumb), color)
}

func renderCustom(rc *RenderContext) {
	if draw := rc.Widget().Props.Draw; draw != nil {
		draw(rc)
	}
}
