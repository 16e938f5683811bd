package gui

import (
	"log"
	"math"

	"github.com/go-drift/imui/pkg/rendering"
)

// Unbounded is the constraint extent of an axis with no limit.
const Unbounded float32 = math.MaxFloat32

// Constraints bound a widget's size. A zero Max axis means no room, use
// Unbounded for no limit.
type Constraints struct {
	Min rendering.Size
	Max rendering.Size
}

func bounded(v float32) bool { return v < Unbounded }

// shrink subtracts d from an extent, leaving Unbounded as is.
func shrink(v, d float32) float32 {
	if !bounded(v) {
		return v
	}
	return max(0, v-d)
}

func offsetAxis(o rendering.Offset, axis int) float32 {
	if axis == 0 {
		return o.X
	}
	return o.Y
}

func setOffsetAxis(o *rendering.Offset, axis int, v float32) {
	if axis == 0 {
		o.X = v
	} else {
		o.Y = v
	}
}

func leadingInset(in rendering.Insets, axis int) float32 {
	if axis == 0 {
		return in.Left
	}
	return in.Top
}

// layoutWidget sizes id under parent constraints and positions its
// children relative to its own box. It returns the final size.
func (c *Context) layoutWidget(parent Constraints, id WidgetID) rendering.Size {
	w := &c.widgets[id]
	w.Props.Computed.LaidOutFrame = c.frame
	spec := &w.Props.Layout

	// The widget's own min wins over the parent's; the tighter max wins.
	var merged Constraints
	for axis := range 2 {
		hi := parent.Max.Axis(axis)
		if own := spec.Max.Axis(axis); own > 0 {
			hi = min(hi, own)
		}
		merged.Max.SetAxis(axis, hi)
		merged.Min.SetAxis(axis, min(spec.Min.Axis(axis), hi))
	}

	intrinsic := c.intrinsicSize(w)
	hasIntrinsic := spec.Intrinsic != IntrinsicNone
	var sized [2]bool
	for axis := range 2 {
		sized[axis] = hasIntrinsic
		if spec.Flags&expandFlag(axis) == 0 {
			continue
		}
		hi := merged.Max.Axis(axis)
		if !bounded(hi) {
			if !c.warnedExpand {
				c.warnedExpand = true
				log.Printf("imui: widget %d expands along an unbounded axis, ignoring expand", id)
			}
			continue
		}
		intrinsic.SetAxis(axis, max(0, hi-spec.ExpandPadding.Axis(axis)))
		sized[axis] = true
	}
	if hasIntrinsic && spec.Flags&LayoutIntrinsicSizeIsMaxSize != 0 {
		for axis := range 2 {
			hi := min(merged.Max.Axis(axis), intrinsic.Axis(axis))
			merged.Max.SetAxis(axis, hi)
			merged.Min.SetAxis(axis, min(merged.Min.Axis(axis), hi))
		}
	}

	var content rendering.Size
	if w.Hierarchy.FirstChild != NullID {
		if spec.Direction == DirectionFree {
			c.sortFreeChildren(id)
		}
		c.moveParentControlledLast(id)

		var avail rendering.Size
		for axis := range 2 {
			if spec.Flags&overflowFlag(axis) != 0 {
				avail.SetAxis(axis, Unbounded)
			} else {
				avail.SetAxis(axis, shrink(merged.Max.Axis(axis), spec.Padding.Axis(axis)))
			}
		}
		switch spec.Direction {
		case DirectionVertical:
			content = c.layoutStack(id, avail, 1)
		case DirectionHorizontal:
			content = c.layoutStack(id, avail, 0)
		default:
			content = c.layoutFree(id, avail)
		}
		w = &c.widgets[id]
	}

	var size rendering.Size
	for axis := range 2 {
		var v float32
		switch {
		case sized[axis]:
			v = intrinsic.Axis(axis)
		case spec.Flags&overflowFlag(axis) != 0:
			v = spec.Padding.Axis(axis)
		default:
			v = content.Axis(axis) + spec.Padding.Axis(axis)
		}
		v = max(v, merged.Min.Axis(axis))
		v = min(v, merged.Max.Axis(axis))
		size.SetAxis(axis, v)
	}
	w.Props.Computed.Size = size
	w.Props.Computed.ContentSize = content

	c.layoutParentControlled(id, merged.Max, size)
	return size
}

func (c *Context) intrinsicSize(w *Widget) rendering.Size {
	spec := &w.Props.Layout
	switch spec.Intrinsic {
	case IntrinsicFixedPixels:
		return spec.FixedSize
	case IntrinsicMeasureText:
		s := c.measurer.MeasureText(w.Props.Text, c.face(w.Props.Font))
		s.Width += spec.Padding.Horizontal()
		s.Height += spec.Padding.Vertical()
		return s
	}
	return rendering.Size{}
}

// inFlow reports whether child takes part in its parent's stacking or free
// placement this pass.
func (c *Context) inFlow(child WidgetID) bool {
	cw := &c.widgets[child]
	return !cw.ignored() && !cw.parentControlled() && cw.Props.Computed.LaidOutFrame != c.frame
}

// layoutStack places children one after another along axis. Each child
// sees only the room left by its predecessors; the spacing between two
// children is clipped to what remains.
func (c *Context) layoutStack(id WidgetID, avail rendering.Size, axis int) rendering.Size {
	cross := 1 - axis
	padding := c.widgets[id].Props.Layout.Padding
	spacing := c.widgets[id].Props.Layout.Spacing
	remaining := avail.Axis(axis)
	var cursor, extent float32
	first := true

	for ch := c.widgets[id].Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		if !c.inFlow(ch) {
			continue
		}
		if !first {
			gap := spacing
			if bounded(remaining) {
				gap = min(gap, remaining)
			}
			cursor += gap
			remaining = shrink(remaining, gap)
		}
		first = false

		childMax := avail
		childMax.SetAxis(axis, remaining)
		s := c.layoutWidget(Constraints{Max: childMax}, ch)

		var pos rendering.Offset
		setOffsetAxis(&pos, axis, leadingInset(padding, axis)+cursor)
		setOffsetAxis(&pos, cross, leadingInset(padding, cross))
		c.widgets[ch].Props.Computed.Position = pos

		cursor += s.Axis(axis)
		remaining = shrink(remaining, s.Axis(axis))
		extent = max(extent, s.Axis(cross))
	}

	var content rendering.Size
	content.SetAxis(axis, cursor)
	content.SetAxis(cross, extent)
	return content
}

// layoutFree keeps each child's explicit position, applies docking and
// clamps it inside the available box. Clamped positions are written back
// so dragged windows cannot leave the screen.
func (c *Context) layoutFree(id WidgetID, avail rendering.Size) rendering.Size {
	padding := c.widgets[id].Props.Layout.Padding
	var content rendering.Size
	for ch := c.widgets[id].Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		if !c.inFlow(ch) {
			continue
		}
		s := c.layoutWidget(Constraints{Max: avail}, ch)
		cw := &c.widgets[ch]
		p := dock(cw.Props.Layout.Dock, cw.Props.Layout.Position, s, avail)
		for axis := range 2 {
			room := avail.Axis(axis)
			if !bounded(room) {
				setOffsetAxis(&p, axis, max(0, offsetAxis(p, axis)))
				continue
			}
			hi := max(0, room-s.Axis(axis))
			setOffsetAxis(&p, axis, min(max(offsetAxis(p, axis), 0), hi))
		}
		cw.Props.Layout.Position = p
		cw.Props.Computed.Position = rendering.Offset{X: padding.Left + p.X, Y: padding.Top + p.Y}
		content.Width = max(content.Width, p.X+s.Width)
		content.Height = max(content.Height, p.Y+s.Height)
	}
	return content
}

func dock(d Dock, p rendering.Offset, s, box rendering.Size) rendering.Offset {
	switch d {
	case DockLeft:
		p.X = 0
	case DockTop:
		p.Y = 0
	case DockRight:
		if bounded(box.Width) {
			p.X = box.Width - s.Width
		}
	case DockBottom:
		if bounded(box.Height) {
			p.Y = box.Height - s.Height
		}
	}
	return p
}

// layoutParentControlled lays out the out-of-flow children against the
// parent's full box and positions them relative to its border edge.
func (c *Context) layoutParentControlled(id WidgetID, limit, size rendering.Size) {
	for ch := c.widgets[id].Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		cw := &c.widgets[ch]
		if cw.ignored() || !cw.parentControlled() || cw.Props.Computed.LaidOutFrame == c.frame {
			continue
		}
		s := c.layoutWidget(Constraints{Max: limit}, ch)
		cw = &c.widgets[ch]
		cw.Props.Computed.Position = dock(cw.Props.Layout.Dock, cw.Props.Layout.Position, s, size)
	}
}

// moveParentControlledLast moves out-of-flow children behind the in-flow
// ones so they draw on top and are hit-tested first.
func (c *Context) moveParentControlledLast(id WidgetID) {
	last := c.widgets[id].Hierarchy.LastChild
	for ch := c.widgets[id].Hierarchy.FirstChild; ch != NullID; {
		next := c.widgets[ch].Hierarchy.NextSibling
		if c.widgets[ch].parentControlled() && ch != last {
			c.unlinkChild(ch)
			c.appendChild(id, ch)
		}
		if ch == last {
			break
		}
		ch = next
	}
}

// sortFreeChildren stably insertion-sorts children by SortIndex. When a
// child was brought to the front with MaxSortIndex the indices are
// renumbered from one so the next bring-to-front still compares greater.
func (c *Context) sortFreeChildren(id WidgetID) {
	sortIndex := func(ch WidgetID) uint32 { return c.widgets[ch].Props.Layout.SortIndex }

	first := c.widgets[id].Hierarchy.FirstChild
	for ch := c.widgets[first].Hierarchy.NextSibling; ch != NullID; {
		next := c.widgets[ch].Hierarchy.NextSibling
		key := sortIndex(ch)
		target := c.widgets[ch].Hierarchy.PrevSibling
		for target != NullID && sortIndex(target) > key {
			target = c.widgets[target].Hierarchy.PrevSibling
		}
		if target != c.widgets[ch].Hierarchy.PrevSibling {
			c.unlinkChild(ch)
			c.linkAfter(id, target, ch)
		}
		ch = next
	}

	last := c.widgets[id].Hierarchy.LastChild
	if sortIndex(last) != MaxSortIndex {
		return
	}
	n := uint32(0)
	for ch := c.widgets[id].Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		n++
		c.widgets[ch].Props.Layout.SortIndex = n
	}
	c.nextSort = max(c.nextSort, n+1)
}

// updateGlobalRect converts the local positions from layoutWidget into
// screen rects. In-flow children are shifted by the parent's content
// offset; parent-controlled children are not.
func (c *Context) updateGlobalRect(id WidgetID, origin rendering.Offset) {
	w := &c.widgets[id]
	comp := &w.Props.Computed
	comp.GlobalRect = rendering.RectFromOffsetSize(origin.Add(comp.Position), comp.Size)
	base := comp.GlobalRect.TopLeft()
	scrolled := base.Sub(w.Props.ContentOffset)
	for ch := w.Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		cw := &c.widgets[ch]
		if cw.ignored() {
			continue
		}
		if cw.parentControlled() {
			c.updateGlobalRect(ch, base)
		} else {
			c.updateGlobalRect(ch, scrolled)
		}
	}
}
