package gui

import (
	"fmt"
	"image"

	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/rendering"
	"github.com/go-drift/imui/pkg/text"
	"github.com/go-drift/imui/pkg/theme"
)

// Render draws the last ended frame through the backend. It returns false
// without drawing when the frame digest equals the last drawn one, no
// forced render fired and AlwaysRender is off.
func (c *Context) Render() (bool, error) {
	if c.inFrame {
		c.report("gui.Render", guierrors.KindUsage, guierrors.ErrRenderInFrame, NullID)
		return false, c.reporter.Err()
	}
	if !c.ended || !c.Lookup(c.root, TypeRoot) {
		return false, c.reporter.Err()
	}

	c.fireForceRenders()
	digest := c.frameDigest()
	if c.hasDigest && digest == c.lastDigest && len(c.fired) == 0 && !c.opts.AlwaysRender {
		c.stats.Skipped = true
		c.stats.Rendered = false
		return false, c.reporter.Err()
	}

	start := c.platform.PerformanceCounter()
	c.stats.DrawCalls = 0
	c.clipDepth = 0
	c.backend.BeginFrame(c.theme.Color(theme.StyleBackground))
	root := c.widgets[c.root].Props.Computed.GlobalRect
	c.visit(c.root, root)
	c.backend.EndFrame()

	if q, ok := c.backend.(interface{ Dropped() int }); ok && q.Dropped() > 0 {
		c.report("gui.Render", guierrors.KindCapacity,
			fmt.Errorf("render commands: %w (%d dropped)", guierrors.ErrQueueFull, q.Dropped()), NullID)
	}
	if c.clipDepth != 0 {
		c.report("gui.Render", guierrors.KindClip, guierrors.ErrClipStack, NullID)
		c.clipDepth = 0
	}
	c.clearForced()
	c.lastDigest, c.hasDigest = digest, true
	c.stats.Rendered = true
	c.stats.Skipped = false
	c.stats.RenderDuration = c.elapsed(start)
	return true, c.reporter.Err()
}

// visit draws id and its subtree. Subtrees outside clip are skipped. A
// clip rect is pushed only when the children overflow the padded box, and
// it is popped before the parent-controlled children, which draw over the
// padding.
func (c *Context) visit(id WidgetID, clip rendering.Rect) {
	w := &c.widgets[id]
	if w.ignored() {
		return
	}
	rect := w.Props.Computed.GlobalRect
	visible := rect.Intersect(clip)
	if !visible.IsEmpty() {
		rc := RenderContext{
			ctx:     c,
			id:      id,
			origin:  rect.TopLeft(),
			Size:    rect.Size(),
			Visible: visible.Translate(rendering.Offset{X: -rect.Left, Y: -rect.Top}),
		}
		if draw := behaviors[w.Type].render; draw != nil {
			draw(&rc)
		}
		if id == c.textEditID && c.textEdit != nil {
			c.drawTextEdit(&rc)
		}
	}

	inner := rect.Deflate(w.Props.Layout.Padding)
	childClip := inner.Intersect(clip)
	overflow := c.overflows(w, inner)
	pushed := false
	for ch := w.Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		if c.widgets[ch].parentControlled() {
			if pushed {
				c.popClip()
				pushed = false
			}
			c.visit(ch, clip)
			continue
		}
		if visible.IsEmpty() || childClip.IsEmpty() {
			continue
		}
		if overflow && !pushed {
			c.pushClip(childClip)
			pushed = true
		}
		c.visit(ch, childClip)
	}
	if pushed {
		c.popClip()
	}
}

const caretWidth = 1

// drawTextEdit overlays the selection and caret of the active text edit.
// Positions are measured from the padded top-left corner, where labels
// draw their text. The IME window follows the caret.
func (c *Context) drawTextEdit(rc *RenderContext) {
	w := rc.Widget()
	edit := c.textEdit
	text := string(edit.Buffer())
	face := c.face(w.Props.Font)
	pos := func(i int) float32 {
		return c.measurer.CharacterPosition(text, face, min(max(i, 0), len(text)))
	}
	left, top := w.Props.Layout.Padding.Left, w.Props.Layout.Padding.Top
	lh := rc.LineHeight(w.Props.Font)

	if start, end := edit.SelectStart(), edit.SelectEnd(); start != end {
		from, to := pos(min(start, end)), pos(max(start, end))
		rc.DrawRectangle(rendering.RectFromLTWH(left+from, top, to-from, lh), w.Props.Foreground.WithAlpha(0x40))
	}
	caret := rendering.RectFromLTWH(left+pos(edit.Cursor()), top, caretWidth, lh)
	rc.DrawRectangle(caret, w.Props.Foreground)
	c.platform.SetInputMethodEditor(true, rc.global(caret))
}

func (c *Context) overflows(w *Widget, inner rendering.Rect) bool {
	p := &w.Props
	if p.ContentOffset != (rendering.Offset{}) {
		return true
	}
	return p.Computed.ContentSize.Width > inner.Width() || p.Computed.ContentSize.Height > inner.Height()
}

func (c *Context) pushClip(r rendering.Rect) {
	c.clipDepth++
	c.stats.DrawCalls++
	c.backend.PushClipRect(r)
}

func (c *Context) popClip() {
	c.clipDepth--
	c.stats.DrawCalls++
	c.backend.PopClipRect()
}

// RenderContext is handed to widget render functions. Draw calls take
// coordinates local to the widget's top-left corner.
type RenderContext struct {
	ctx    *Context
	id     WidgetID
	origin rendering.Offset

	// Size is the widget's laid-out size.
	Size rendering.Size
	// Visible is the part of the widget inside the current clip, in local
	// coordinates.
	Visible rendering.Rect
}

// ID returns the widget being drawn.
func (rc *RenderContext) ID() WidgetID { return rc.id }

// Widget returns the record of the widget being drawn.
func (rc *RenderContext) Widget() *Widget { return &rc.ctx.widgets[rc.id] }

// Context returns the owning context.
func (rc *RenderContext) Context() *Context { return rc.ctx }

// Bounds returns the widget's local rect.
func (rc *RenderContext) Bounds() rendering.Rect {
	return rendering.RectFromOffsetSize(rendering.Offset{}, rc.Size)
}

func (rc *RenderContext) global(r rendering.Rect) rendering.Rect { return r.Translate(rc.origin) }

func (rc *RenderContext) DrawRectangle(r rendering.Rect, color rendering.Color) {
	if color.Alpha() == 0 || r.IsEmpty() {
		return
	}
	rc.ctx.stats.DrawCalls++
	rc.ctx.backend.DrawRectangle(rc.global(r), color)
}

func (rc *RenderContext) DrawBorder(r rendering.Rect, width float32, color rendering.Color) {
	if color.Alpha() == 0 || width <= 0 {
		return
	}
	rc.ctx.stats.DrawCalls++
	rc.ctx.backend.DrawBorder(rc.global(r), width, color)
}

// DrawText draws s with its top-left corner at p.
func (rc *RenderContext) DrawText(p rendering.Offset, s string, font FontID, color rendering.Color) {
	if s == "" || color.Alpha() == 0 {
		return
	}
	rc.ctx.stats.DrawCalls++
	rc.ctx.backend.DrawText(p.Add(rc.origin), s, rc.ctx.face(font), color)
}

// DrawTextCentered centers s inside the local rect r.
func (rc *RenderContext) DrawTextCentered(r rendering.Rect, s string, font FontID, color rendering.Color) {
	size := rc.ctx.measurer.MeasureText(s, rc.ctx.face(font))
	p := rendering.Offset{
		X: r.Left + (r.Width()-size.Width)/2,
		Y: r.Top + (r.Height()-size.Height)/2,
	}
	rc.DrawText(p, s, font, color)
}

func (rc *RenderContext) DrawImage(r rendering.Rect, img image.Image) {
	if img == nil {
		return
	}
	rc.ctx.stats.DrawCalls++
	rc.ctx.backend.DrawImage(rc.global(r), img)
}

func (rc *RenderContext) DrawLine(from, to rendering.Offset, width float32, color rendering.Color) {
	rc.ctx.stats.DrawCalls++
	rc.ctx.backend.DrawLine(from.Add(rc.origin), to.Add(rc.origin), width, color)
}

// LineHeight returns the line height of font.
func (rc *RenderContext) LineHeight(font FontID) float32 {
	return text.LineHeight(rc.ctx.face(font))
}
