package gui

import (
	"encoding/binary"
	"math"
	"time"

	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/rendering"
	"github.com/go-drift/imui/pkg/theme"
)

type forceEntry struct {
	id       WidgetID
	hash     uint32
	deadline int64
}

// ForceRender schedules widget id to be repainted after delay even if
// nothing else changes. Scheduling a widget that is already queued keeps
// the earlier deadline. Entries are matched by slot and identity hash
// only, so changed props or text do not restart them; if the slot has
// since been reused by a different widget the entry is restarted.
func (c *Context) ForceRender(id WidgetID, delay time.Duration) {
	if !c.Lookup(id, TypeNone) {
		return
	}
	h := c.widgets[id].Hash
	deadline := c.platform.TimeMilliseconds() + delay.Milliseconds()
	for i := range c.force {
		e := &c.force[i]
		if e.id != id {
			continue
		}
		if e.hash == h {
			e.deadline = min(e.deadline, deadline)
		} else {
			e.hash, e.deadline = h, deadline
		}
		return
	}
	if len(c.force) >= c.opts.ForceRenderQueueSize {
		c.report("gui.ForceRender", guierrors.KindCapacity, guierrors.ErrQueueFull, id)
		return
	}
	c.force = append(c.force, forceEntry{id: id, hash: h, deadline: deadline})
}

// PendingForceRenders returns the number of queued forced renders.
func (c *Context) PendingForceRenders() int { return len(c.force) }

// fireForceRenders flags every widget whose deadline passed and removes
// its entry. Entries for widgets that are gone are dropped.
func (c *Context) fireForceRenders() {
	now := c.platform.TimeMilliseconds()
	for i := 0; i < len(c.force); {
		e := c.force[i]
		if now < e.deadline {
			i++
			continue
		}
		if c.Lookup(e.id, TypeNone) && c.widgets[e.id].Hash == e.hash {
			c.widgets[e.id].Flags |= FlagForceRender
			c.fired = append(c.fired, e.id)
		}
		last := len(c.force) - 1
		c.force[i] = c.force[last]
		c.force = c.force[:last]
	}
}

func (c *Context) clearForced() {
	for _, id := range c.fired {
		if c.Lookup(id, TypeNone) {
			c.widgets[id].Flags &^= FlagForceRender
		}
	}
	c.fired = c.fired[:0]
}

// frameDigest hashes everything that affects what Render draws: the
// visible widget tree, input feedback, the active text edit and the theme.
// Frame counters are left out so an unchanged tree hashes the same in
// every frame.
func (c *Context) frameDigest() uint64 {
	d := c.digest
	d.Reset()
	if c.root != NullID {
		c.digestWidget(c.root)
	}

	b := c.scratch[:0]
	b = appendID(b, c.feedback.Hovered)
	b = appendID(b, c.feedback.Pressed)
	b = appendID(b, c.feedback.Dragged)
	for s := theme.Style(0); s < theme.StyleCount; s++ {
		b = binary.LittleEndian.AppendUint32(b, c.theme.Get(s))
	}
	if c.textEdit != nil {
		b = appendID(b, c.textEditID)
		b = binary.LittleEndian.AppendUint32(b, uint32(c.textEdit.Cursor()))
		b = binary.LittleEndian.AppendUint32(b, uint32(c.textEdit.SelectStart()))
		b = binary.LittleEndian.AppendUint32(b, uint32(c.textEdit.SelectEnd()))
	}
	c.scratch = b
	d.Write(b)
	if c.textEdit != nil {
		d.Write(c.textEdit.Buffer())
	}
	return d.Sum64()
}

func (c *Context) digestWidget(id WidgetID) {
	w := &c.widgets[id]
	if w.ignored() {
		return
	}
	p := &w.Props
	b := c.scratch[:0]
	b = binary.LittleEndian.AppendUint32(b, w.Hash)
	b = append(b, byte(w.Type))
	b = binary.LittleEndian.AppendUint16(b, uint16(w.Flags&^transientFlags))
	b = appendLayout(b, &p.Layout)
	b = appendOffset(b, p.Computed.Position)
	b = appendSize(b, p.Computed.Size)
	b = appendSize(b, p.Computed.ContentSize)
	b = appendRect(b, p.Computed.GlobalRect)
	b = append(b, byte(p.Font), byte(p.Input))
	b = appendFloat(b, p.Value)
	b = appendFloat(b, p.Min)
	b = appendFloat(b, p.Max)
	b = appendFloat(b, p.MouseTolerance)
	b = appendOffset(b, p.ContentOffset)
	b = binary.LittleEndian.AppendUint32(b, uint32(p.Background))
	b = binary.LittleEndian.AppendUint32(b, uint32(p.Foreground))
	b = binary.LittleEndian.AppendUint32(b, uint32(p.Border))
	b = appendFloat(b, p.BorderWidth)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(p.Text)))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(p.Custom)))
	c.scratch = b

	c.digest.Write(b)
	c.digest.WriteString(p.Text)
	c.digest.Write(p.Custom)

	for ch := w.Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		c.digestWidget(ch)
	}
	// Close the child list so moving a widget between siblings and
	// children changes the digest.
	c.digest.Write([]byte{0xff})
}

func appendID(b []byte, id WidgetID) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(id))
}

func appendFloat(b []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
}

func appendOffset(b []byte, o rendering.Offset) []byte {
	return appendFloat(appendFloat(b, o.X), o.Y)
}

func appendSize(b []byte, s rendering.Size) []byte {
	return appendFloat(appendFloat(b, s.Width), s.Height)
}

func appendInsets(b []byte, in rendering.Insets) []byte {
	b = appendFloat(b, in.Left)
	b = appendFloat(b, in.Top)
	b = appendFloat(b, in.Right)
	return appendFloat(b, in.Bottom)
}

func appendRect(b []byte, r rendering.Rect) []byte {
	b = appendFloat(b, r.Left)
	b = appendFloat(b, r.Top)
	b = appendFloat(b, r.Right)
	return appendFloat(b, r.Bottom)
}

func appendLayout(b []byte, l *LayoutSpec) []byte {
	b = append(b, byte(l.Direction), byte(l.Intrinsic), byte(l.Dock))
	b = appendSize(b, l.FixedSize)
	b = appendSize(b, l.Min)
	b = appendSize(b, l.Max)
	b = appendInsets(b, l.Padding)
	b = appendFloat(b, l.Spacing)
	b = appendSize(b, l.ExpandPadding)
	b = binary.LittleEndian.AppendUint16(b, uint16(l.Flags))
	b = appendOffset(b, l.Position)
	return binary.LittleEndian.AppendUint32(b, l.SortIndex)
}
