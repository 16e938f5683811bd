package gui

import (
	"fmt"

	guierrors "github.com/go-drift/imui/pkg/errors"
)

// verify walks the arena and reports the first broken link. It is only
// called when built with the imuidebug tag.
func (c *Context) verify(op string) {
	if err := c.checkArena(); err != nil {
		c.report(op, guierrors.KindInvariant, err, NullID)
	}
}

func (c *Context) checkArena() error {
	free := 0
	seen := make(map[WidgetID]bool)
	for id := c.firstFree; id != NullID; id = c.widgets[id].Hierarchy.NextSibling {
		if seen[id] {
			return fmt.Errorf("free list cycle at %d", id)
		}
		seen[id] = true
		if c.widgets[id].Used() {
			return fmt.Errorf("free list contains used widget %d", id)
		}
		free++
	}
	if free+c.live != len(c.widgets)-1 {
		return fmt.Errorf("free %d + live %d != capacity %d", free, c.live, len(c.widgets)-1)
	}

	for i := 1; i < len(c.widgets); i++ {
		id := WidgetID(i)
		w := &c.widgets[i]
		if !w.Used() {
			continue
		}
		if c.find(w.Hash) != id {
			return fmt.Errorf("widget %d not reachable through its hash bucket", id)
		}
		prev := NullID
		for ch := w.Hierarchy.FirstChild; ch != NullID; ch = c.widgets[ch].Hierarchy.NextSibling {
			h := c.widgets[ch].Hierarchy
			if h.Parent != id {
				return fmt.Errorf("widget %d lists child %d whose parent is %d", id, ch, h.Parent)
			}
			if h.PrevSibling != prev {
				return fmt.Errorf("widget %d has prev %d, want %d", ch, h.PrevSibling, prev)
			}
			prev = ch
		}
		if w.Hierarchy.LastChild != prev {
			return fmt.Errorf("widget %d last child %d, want %d", id, w.Hierarchy.LastChild, prev)
		}
	}
	return nil
}
