package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

// Finder locates widgets in the live tree.
type Finder interface {
	// Evaluate returns all matching widgets (depth-first pre-order from
	// the root).
	Evaluate(c *gui.Context) []gui.WidgetID
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	ctx    *gui.Context
	ids    []gui.WidgetID
	finder Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() gui.WidgetID {
	if len(r.ids) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.description()))
	}
	return r.ids[0]
}

// FirstOrNull returns the first match, or gui.NullID if none.
func (r FinderResult) FirstOrNull() gui.WidgetID {
	if len(r.ids) == 0 {
		return gui.NullID
	}
	return r.ids[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) gui.WidgetID {
	if index < 0 || index >= len(r.ids) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.ids), r.description()))
	}
	return r.ids[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []gui.WidgetID { return r.ids }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.ids) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.ids) > 0 }

// Widget returns a copy of the first match. Panics if no matches.
func (r FinderResult) Widget() gui.Widget {
	w, _ := r.ctx.Widget(r.First())
	return w
}

// Rect returns the screen rect of the first match. Panics if no matches.
func (r FinderResult) Rect() rendering.Rect {
	return r.Widget().Props.Computed.GlobalRect
}

// --- Concrete finders ---

type typeFinder struct {
	typ gui.WidgetType
}

func (f *typeFinder) Evaluate(c *gui.Context) []gui.WidgetID {
	return collectMatches(c, c.Root(), func(w *gui.Widget) bool { return w.Type == f.typ })
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typ)
}

// ByType returns a finder that matches widgets of type typ.
func ByType(typ gui.WidgetType) Finder {
	return &typeFinder{typ: typ}
}

// textFinder matches widgets whose text (label, button caption or window
// title) equals text exactly.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(c *gui.Context) []gui.WidgetID {
	return collectMatches(c, c.Root(), func(w *gui.Widget) bool { return w.Props.Text == f.text })
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches widgets with exactly this text.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(c *gui.Context) []gui.WidgetID {
	return collectMatches(c, c.Root(), func(w *gui.Widget) bool {
		return w.Props.Text != "" && strings.Contains(w.Props.Text, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches widgets whose text
// contains substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

type predicateFinder struct {
	fn   func(*gui.Widget) bool
	desc string
}

func (f *predicateFinder) Evaluate(c *gui.Context) []gui.WidgetID {
	return collectMatches(c, c.Root(), f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(*gui.Widget) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds widgets matching 'matching' below widgets
// matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(c *gui.Context) []gui.WidgetID {
	ancestors := f.of.Evaluate(c)
	if len(ancestors) == 0 {
		return nil
	}
	var results []gui.WidgetID
	seen := make(map[gui.WidgetID]bool)
	for _, match := range f.matching.Evaluate(c) {
		if seen[match] {
			continue
		}
		for _, a := range ancestors {
			if match != a && isAncestorOf(c, a, match) {
				seen[match] = true
				results = append(results, match)
				break
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying 'matching'
// that are descendants of widgets matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// isAncestorOf walks up from descendant's parent.
func isAncestorOf(c *gui.Context, ancestor, descendant gui.WidgetID) bool {
	w, ok := c.Widget(descendant)
	for ok && w.Hierarchy.Parent != gui.NullID {
		if w.Hierarchy.Parent == ancestor {
			return true
		}
		w, ok = c.Widget(w.Hierarchy.Parent)
	}
	return false
}

// collectMatches performs depth-first pre-order traversal from root,
// collecting live widgets that satisfy the predicate.
func collectMatches(c *gui.Context, root gui.WidgetID, predicate func(*gui.Widget) bool) []gui.WidgetID {
	var results []gui.WidgetID
	walkTree(c, root, func(id gui.WidgetID, w *gui.Widget) {
		if predicate(w) {
			results = append(results, id)
		}
	})
	return results
}

func walkTree(c *gui.Context, id gui.WidgetID, visitor func(gui.WidgetID, *gui.Widget)) {
	w, ok := c.Widget(id)
	if !ok {
		return
	}
	visitor(id, &w)
	for _, ch := range c.Children(id) {
		walkTree(c, ch, visitor)
	}
}
