package gui

import (
	"fmt"

	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/hash"
)

// Key words for widget identity hashing. rootParentHash stands in for the
// parent hash of root-level and parent-independent widgets.
const (
	identitySeed   uint32 = 0x696d7569
	rootParentHash uint32 = 0x9e3779b9
)

// identityHash derives a widget hash from its type, identifier and
// parent. The type is folded into the first key byte so that a button and
// a label with the same identifier differ.
func identityHash(typ WidgetType, identifier string, parentHash uint32) uint32 {
	key := hash.KeyFrom(parentHash, identitySeed)
	key[0] ^= byte(typ)
	return hash.String(key, identifier)
}

func (c *Context) initFreeList() {
	n := len(c.widgets) - 1
	for i := 1; i <= n; i++ {
		next := WidgetID(0)
		if i < n {
			next = WidgetID(i + 1)
		}
		c.widgets[i] = Widget{Hierarchy: Hierarchy{NextSibling: next}}
	}
	if n > 0 {
		c.firstFree = 1
	}
	c.live = 0
}

func (c *Context) bucket(h uint32) int {
	return int(h % uint32(len(c.buckets)))
}

func (c *Context) find(h uint32) WidgetID {
	for id := c.buckets[c.bucket(h)]; id != NullID; id = c.widgets[id].HashChain.Next {
		if c.widgets[id].Hash == h {
			return id
		}
	}
	return NullID
}

// addWidget returns the widget for identifier under parent, creating it if
// needed. isNew reports whether the slot was allocated this call. A zero id
// is returned after a reported duplicate or capacity error.
func (c *Context) addWidget(typ WidgetType, identifier string, parent WidgetID, independent bool) (id WidgetID, isNew bool) {
	if !c.inFrame {
		c.report("gui.AddWidget", guierrors.KindUsage, guierrors.ErrOutsideFrame, NullID)
		return NullID, false
	}
	// The enclosing window or container failed to open and was reported.
	if parent == NullID && typ != TypeRoot {
		return NullID, false
	}
	parentHash := rootParentHash
	if parent != NullID && !independent {
		parentHash = c.widgets[parent].Hash
	}
	h := identityHash(typ, identifier, parentHash)

	id = c.find(h)
	if id != NullID {
		w := &c.widgets[id]
		if w.LastUsedInFrame == c.frame {
			c.report("gui.AddWidget", guierrors.KindDuplicate,
				fmt.Errorf("%w: %s %q", guierrors.ErrDuplicateID, typ, identifier), id)
			return NullID, false
		}
		if debugChecks && w.Type != typ {
			c.report("gui.AddWidget", guierrors.KindInvariant,
				fmt.Errorf("hash collision between %s and %s", w.Type, typ), id)
		}
		w.LastUsedInFrame = c.frame
		w.buildCursor = NullID
		c.stats.Reused++
	} else {
		if c.firstFree == NullID {
			c.report("gui.AddWidget", guierrors.KindCapacity, guierrors.ErrArenaFull, NullID)
			return NullID, false
		}
		id = c.firstFree
		c.firstFree = c.widgets[id].Hierarchy.NextSibling
		c.widgets[id] = Widget{
			Hash:            h,
			LastUsedInFrame: c.frame,
			Type:            typ,
			Flags:           FlagUsed,
		}
		c.linkHash(id)
		c.live++
		c.stats.New++
		isNew = true
	}

	if parent != NullID {
		c.place(parent, id)
	}
	return id, isNew
}

// place puts id right after the last child its parent has seen this frame,
// so sibling order follows declaration order.
func (c *Context) place(parent, id WidgetID) {
	p := &c.widgets[parent]
	w := &c.widgets[id]
	after := p.buildCursor
	p.buildCursor = id

	if w.Hierarchy.Parent == parent {
		if after == NullID && p.Hierarchy.FirstChild == id {
			return
		}
		if after != NullID && c.widgets[after].Hierarchy.NextSibling == id {
			return
		}
		c.unlinkChild(id)
	} else if w.Hierarchy.Parent != NullID {
		c.unlinkChild(id)
	}
	c.linkAfter(parent, after, id)
}

// linkAfter inserts id among parent's children after sibling, or first
// when sibling is NULL.
func (c *Context) linkAfter(parent, sibling, id WidgetID) {
	p := &c.widgets[parent]
	w := &c.widgets[id]
	w.Hierarchy.Parent = parent
	w.Hierarchy.PrevSibling = sibling
	if sibling == NullID {
		w.Hierarchy.NextSibling = p.Hierarchy.FirstChild
		p.Hierarchy.FirstChild = id
	} else {
		s := &c.widgets[sibling]
		w.Hierarchy.NextSibling = s.Hierarchy.NextSibling
		s.Hierarchy.NextSibling = id
	}
	if next := w.Hierarchy.NextSibling; next != NullID {
		c.widgets[next].Hierarchy.PrevSibling = id
	} else {
		p.Hierarchy.LastChild = id
	}
}

// appendChild makes id the last child of parent.
func (c *Context) appendChild(parent, id WidgetID) {
	c.linkAfter(parent, c.widgets[parent].Hierarchy.LastChild, id)
}

// unlinkChild detaches id from its parent, keeping its own children.
func (c *Context) unlinkChild(id WidgetID) {
	h := &c.widgets[id].Hierarchy
	p := &c.widgets[h.Parent].Hierarchy
	if h.PrevSibling != NullID {
		c.widgets[h.PrevSibling].Hierarchy.NextSibling = h.NextSibling
	} else {
		p.FirstChild = h.NextSibling
	}
	if h.NextSibling != NullID {
		c.widgets[h.NextSibling].Hierarchy.PrevSibling = h.PrevSibling
	} else {
		p.LastChild = h.PrevSibling
	}
	h.Parent, h.PrevSibling, h.NextSibling = NullID, NullID, NullID
}

func (c *Context) linkHash(id WidgetID) {
	b := c.bucket(c.widgets[id].Hash)
	head := c.buckets[b]
	c.widgets[id].HashChain = HashChain{Next: head}
	if head != NullID {
		c.widgets[head].HashChain.Prev = id
	}
	c.buckets[b] = id
}

func (c *Context) unlinkHash(id WidgetID) {
	chain := c.widgets[id].HashChain
	if chain.Prev != NullID {
		c.widgets[chain.Prev].HashChain.Next = chain.Next
	} else {
		c.buckets[c.bucket(c.widgets[id].Hash)] = chain.Next
	}
	if chain.Next != NullID {
		c.widgets[chain.Next].HashChain.Prev = chain.Prev
	}
}

// destroyWidget returns a slot to the free list. Children are orphaned
// first; they are either destroyed by the same sweep or reattached when
// they are declared again.
func (c *Context) destroyWidget(id WidgetID) {
	w := &c.widgets[id]
	for child := w.Hierarchy.FirstChild; child != NullID; {
		next := c.widgets[child].Hierarchy.NextSibling
		ch := &c.widgets[child].Hierarchy
		ch.Parent, ch.PrevSibling, ch.NextSibling = NullID, NullID, NullID
		child = next
	}
	w.Hierarchy.FirstChild, w.Hierarchy.LastChild = NullID, NullID
	if parent := w.Hierarchy.Parent; parent != NullID && c.widgets[parent].Used() {
		c.unlinkChild(id)
	}
	c.unlinkHash(id)
	c.forget(id)

	*w = Widget{Hierarchy: Hierarchy{NextSibling: c.firstFree}}
	c.firstFree = id
	c.live--
}

// forget drops per-frame references to a destroyed widget.
func (c *Context) forget(id WidgetID) {
	f := &c.feedback
	if f.Hovered == id {
		f.Hovered = NullID
	}
	if f.Pressed == id {
		f.Pressed = NullID
	}
	if f.Dragged == id {
		f.Dragged = NullID
	}
	if f.Clicked == id {
		f.Clicked = NullID
	}
	if c.textEditID == id {
		c.clearTextEdit()
	}
	if c.debugWindow == id {
		c.debugWindow = NullID
	}
}

// sweep destroys every widget not declared this frame. The number to
// destroy is known up front: everything alive at the end of the previous
// frame minus what was reused in this one.
func (c *Context) sweep() {
	remaining := c.prevStats.New + c.prevStats.Reused - c.stats.Reused
	destroyed := 0
	for i := 1; i < len(c.widgets) && remaining > 0; i++ {
		w := &c.widgets[i]
		if !w.Used() || w.LastUsedInFrame >= c.frame {
			continue
		}
		c.destroyWidget(WidgetID(i))
		remaining--
		destroyed++
	}
	c.stats.Destroyed = destroyed
	if remaining != 0 {
		c.report("gui.EndFrame", guierrors.KindInvariant,
			fmt.Errorf("%w: %d left", guierrors.ErrSweep, remaining), NullID)
	}
}

// Lookup reports whether id names a live widget of the given type.
// TypeNone matches any type.
func (c *Context) Lookup(id WidgetID, typ WidgetType) bool {
	if id <= NullID || int(id) >= len(c.widgets) {
		return false
	}
	w := &c.widgets[id]
	return w.Used() && (typ == TypeNone || w.Type == typ)
}

// Widget returns a copy of the widget record for id.
func (c *Context) Widget(id WidgetID) (Widget, bool) {
	if !c.Lookup(id, TypeNone) {
		return Widget{}, false
	}
	return c.widgets[id], true
}

// Root returns the root widget of the current or last frame.
func (c *Context) Root() WidgetID { return c.root }

// Children returns the child ids of id in sibling order.
func (c *Context) Children(id WidgetID) []WidgetID {
	if !c.Lookup(id, TypeNone) {
		return nil
	}
	var out []WidgetID
	for ch := c.widgets[id].Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
		out = append(out, ch)
	}
	return out
}

// SetIgnored toggles FlagIgnore on a live widget.
func (c *Context) SetIgnored(id WidgetID, ignored bool) {
	if !c.Lookup(id, TypeNone) {
		return
	}
	if ignored {
		c.widgets[id].Flags |= FlagIgnore
	} else {
		c.widgets[id].Flags &^= FlagIgnore
	}
}
