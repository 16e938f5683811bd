package gui

import (
	"strconv"
	"unsafe"

	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/pool"
	"github.com/go-drift/imui/pkg/rendering"
	"github.com/go-drift/imui/pkg/theme"
)

// IDf formats an identifier into the frame string pool.
func (c *Context) IDf(format string, args ...any) string {
	return c.strings.Sprintf(format, args...)
}

// WithIndex returns id suffixed with i, for widgets declared in a loop.
func (c *Context) WithIndex(id string, i int) string {
	var buf [64]byte
	b := append(buf[:0], id...)
	b = append(b, '#')
	b = strconv.AppendInt(b, int64(i), 10)
	return c.strings.StoreBytes(b)
}

// parent returns the widget new children attach to. Non-window widgets
// declared outside any window go into the debug window unless that is
// disabled.
func (c *Context) parent() WidgetID {
	p := c.current()
	if p != NullID && p == c.root && !c.opts.DontNestNonWindowRootElementsIntoDebugWindow {
		if dw := c.ensureDebugWindow(); dw != NullID {
			return dw
		}
	}
	return p
}

func (c *Context) ensureDebugWindow() WidgetID {
	if c.Lookup(c.debugWindow, TypeWindow) && c.widgets[c.debugWindow].LastUsedInFrame == c.frame {
		return c.debugWindow
	}
	c.debugWindow = c.window("##debug", "Debug", WindowOptions{})
	return c.debugWindow
}

// WindowOptions configure BeginWindow. Position is only applied when the
// window is created; afterwards the window keeps wherever it was dragged.
type WindowOptions struct {
	Position rendering.Offset
	// Size defaults to the theme window size on zero axes.
	Size     rendering.Size
	NoTitle  bool
	NoScroll bool
}

// BeginWindow opens a top-level window. It returns false if the window
// could not be created, in which case widgets declared before the matching
// EndWindow are dropped. EndWindow must be called either way.
func (c *Context) BeginWindow(id, title string, opts WindowOptions) bool {
	w := c.window(id, title, opts)
	c.stack = append(c.stack, w)
	return w != NullID
}

// EndWindow closes the window opened by BeginWindow.
func (c *Context) EndWindow() {
	c.end("gui.EndWindow", TypeWindow)
}

func (c *Context) end(op string, typ WidgetType) {
	if !c.inFrame {
		c.report(op, guierrors.KindUsage, guierrors.ErrOutsideFrame, NullID)
		return
	}
	if len(c.stack) <= 1 {
		c.report(op, guierrors.KindUsage, guierrors.ErrUnbalanced, NullID)
		return
	}
	top := c.current()
	if top != NullID && c.widgets[top].Type != typ {
		c.report(op, guierrors.KindUsage, guierrors.ErrUnbalanced, top)
		return
	}
	c.stack = c.stack[:len(c.stack)-1]
}

// window declares a window under the root. Window identity does not depend
// on where it is declared.
func (c *Context) window(identifier, title string, opts WindowOptions) WidgetID {
	id, isNew := c.addWidget(TypeWindow, identifier, c.root, true)
	if id == NullID {
		return NullID
	}
	t := c.theme
	w := &c.widgets[id]
	l := &w.Props.Layout
	if isNew {
		pos := opts.Position
		if pos == (rendering.Offset{}) {
			step := float32(20 + 24*(c.windows%8))
			pos = rendering.Offset{X: step, Y: step}
		}
		c.windows++
		l.Position = pos
		l.SortIndex = c.nextSort
		c.nextSort++
	}

	size := opts.Size
	if size.Width <= 0 {
		size.Width = t.Pixels(theme.StyleWindowWidth)
	}
	if size.Height <= 0 {
		size.Height = t.Pixels(theme.StyleWindowHeight)
	}
	if opts.NoTitle {
		title = ""
	}
	w.Props.Text = c.strings.Store(title)
	titleH := c.titleHeight(id)
	pad := t.Pixels(theme.StyleWindowPadding)

	l.Direction = DirectionVertical
	l.Intrinsic = IntrinsicFixedPixels
	l.FixedSize = size
	l.Min, l.Max = rendering.Size{}, rendering.Size{}
	l.Padding = rendering.Insets{Left: pad, Top: pad + titleH, Right: pad + t.Pixels(theme.StyleScrollbarWidth), Bottom: pad}
	l.Spacing = t.Pixels(theme.StyleWindowSpacing)
	l.ExpandPadding = rendering.Size{}
	l.Flags = LayoutIntrinsicSizeIsMaxSize
	if !opts.NoScroll {
		l.Flags |= LayoutAllowOverflowY
	}
	l.Dock = DockNone

	w.Props.Input = InputDraggable
	w.Props.MouseTolerance = 0
	w.Props.Background = t.Color(theme.StyleWindowBackground)
	w.Props.Foreground = t.Color(theme.StyleWindowTitleText)
	w.Props.Border = t.Color(theme.StyleWindowBorder)
	w.Props.BorderWidth = t.Pixels(theme.StyleWindowBorderWidth)

	if opts.NoScroll {
		w.Props.ContentOffset = rendering.Offset{}
	} else {
		c.clampScroll(id)
		c.scrollbar(id)
	}
	return id
}

// viewHeight is the height available to in-flow children as of the last
// layout.
func (c *Context) viewHeight(id WidgetID) float32 {
	w := &c.widgets[id]
	return w.Props.Computed.Size.Height - w.Props.Layout.Padding.Vertical()
}

func (c *Context) clampScroll(id WidgetID) {
	w := &c.widgets[id]
	limit := max(0, w.Props.Computed.ContentSize.Height-c.viewHeight(id))
	w.Props.ContentOffset.X = 0
	w.Props.ContentOffset.Y = min(max(w.Props.ContentOffset.Y, 0), limit)
}

func (c *Context) scrollBy(id WidgetID, dy float32) {
	if !c.Lookup(id, TypeNone) {
		return
	}
	c.widgets[id].Props.ContentOffset.Y += dy
	c.clampScroll(id)
}

// scrollbar adds the window's scrollbar when its content overflowed in
// the last layout.
func (c *Context) scrollbar(win WidgetID) {
	view := c.viewHeight(win)
	content := c.widgets[win].Props.Computed.ContentSize.Height
	if view <= 0 || content <= view {
		return
	}
	id, _ := c.addWidget(TypeScrollbar, "##scrollbar", win, false)
	if id == NullID {
		return
	}
	w := &c.widgets[win]
	sb := &c.widgets[id]
	titleH := c.titleHeight(win)
	sb.Props.Layout = LayoutSpec{
		Intrinsic: IntrinsicFixedPixels,
		FixedSize: rendering.Size{
			Width:  c.theme.Pixels(theme.StyleScrollbarWidth),
			Height: max(0, w.Props.Layout.FixedSize.Height-titleH),
		},
		Flags:    LayoutParentControlled,
		Dock:     DockRight,
		Position: rendering.Offset{Y: titleH},
	}
	sb.Props.Input = InputDraggable
	sb.Props.Value = w.Props.ContentOffset.Y
	sb.Props.Min = view
	sb.Props.Max = content
}

// ContainerOptions configure BeginContainer. Fields are taken literally;
// start from ContainerStyle for the themed defaults.
type ContainerOptions struct {
	Direction Direction
	// Size fixes the container size when non-zero. A zero axis is
	// sized by the children.
	Size          rendering.Size
	ExpandWidth   bool
	ExpandHeight  bool
	ExpandPadding rendering.Size
	Padding       rendering.Insets
	Spacing       float32
	Background    rendering.Color
	Border        rendering.Color
	BorderWidth   float32
	// Position and Dock apply inside a free parent.
	Position         rendering.Offset
	Dock             Dock
	SortIndex        uint32
	AllowOverflowX   bool
	AllowOverflowY   bool
	ParentControlled bool
	// Scroll offsets the children.
	Scroll rendering.Offset
	// Independent makes the identity ignore the parent.
	Independent bool
}

// ContainerStyle returns options filled from the theme.
func (c *Context) ContainerStyle() ContainerOptions {
	return ContainerOptions{
		Padding:    rendering.UniformInsets(c.theme.Pixels(theme.StyleContainerPadding)),
		Spacing:    c.theme.Pixels(theme.StyleContainerSpacing),
		Background: c.theme.Color(theme.StyleContainerBackground),
	}
}

// BeginContainer opens a layout container. EndContainer must follow.
func (c *Context) BeginContainer(id string, opts ContainerOptions) WidgetID {
	cid, _ := c.addWidget(TypeContainer, id, c.parent(), opts.Independent)
	c.stack = append(c.stack, cid)
	if cid == NullID {
		return NullID
	}
	w := &c.widgets[cid]
	l := LayoutSpec{
		Direction:     opts.Direction,
		Padding:       opts.Padding,
		Spacing:       opts.Spacing,
		ExpandPadding: opts.ExpandPadding,
		Position:      opts.Position,
		Dock:          opts.Dock,
		SortIndex:     opts.SortIndex,
	}
	// A non-zero axis is pinned through min and max; a zero one stays
	// unbounded and follows the children.
	l.Min, l.Max = opts.Size, opts.Size
	if opts.ExpandWidth {
		l.Flags |= LayoutExpandWidth
	}
	if opts.ExpandHeight {
		l.Flags |= LayoutExpandHeight
	}
	if opts.AllowOverflowX {
		l.Flags |= LayoutAllowOverflowX
	}
	if opts.AllowOverflowY {
		l.Flags |= LayoutAllowOverflowY
	}
	if opts.ParentControlled {
		l.Flags |= LayoutParentControlled
	}
	w.Props.Layout = l
	w.Props.Input = InputNoHit
	w.Props.ContentOffset = opts.Scroll
	w.Props.Background = opts.Background
	w.Props.Border = opts.Border
	w.Props.BorderWidth = opts.BorderWidth
	return cid
}

// EndContainer closes the container opened by BeginContainer.
func (c *Context) EndContainer() {
	c.end("gui.EndContainer", TypeContainer)
}

// Button declares a push button and reports whether it was clicked in the
// input pass of this frame.
func (c *Context) Button(id, text string) bool {
	bid, _ := c.addWidget(TypeButton, id, c.parent(), false)
	if bid == NullID {
		return false
	}
	t := c.theme
	w := &c.widgets[bid]
	w.Props.Layout = LayoutSpec{
		Intrinsic: IntrinsicMeasureText,
		Padding:   rendering.UniformInsets(t.Pixels(theme.StyleButtonPadding)),
	}
	w.Props.Text = c.strings.Store(text)
	w.Props.Input = InputDraggable
	w.Props.MouseTolerance = t.Pixels(theme.StyleMouseTolerance)
	w.Props.Foreground = t.Color(theme.StyleButtonText)
	w.Props.Border = t.Color(theme.StyleButtonBorder)
	w.Props.BorderWidth = 1
	return w.Flags&FlagClicked != 0
}

// Label declares a line of text.
func (c *Context) Label(id, text string) WidgetID {
	lid, _ := c.addWidget(TypeLabel, id, c.parent(), false)
	if lid == NullID {
		return NullID
	}
	w := &c.widgets[lid]
	w.Props.Layout = LayoutSpec{Intrinsic: IntrinsicMeasureText}
	w.Props.Text = c.strings.Store(text)
	w.Props.Input = InputNoHit
	w.Props.Foreground = c.theme.Color(theme.StyleLabelText)
	return lid
}

// Labelf declares a label whose text is formatted into the frame pool.
func (c *Context) Labelf(id, format string, args ...any) WidgetID {
	lid := c.Label(id, "")
	if lid != NullID {
		c.widgets[lid].Props.Text = c.strings.Sprintf(format, args...)
	}
	return lid
}

// Spacer declares empty space of the given size.
func (c *Context) Spacer(id string, size rendering.Size) WidgetID {
	sid, _ := c.addWidget(TypeSpacer, id, c.parent(), false)
	if sid == NullID {
		return NullID
	}
	w := &c.widgets[sid]
	w.Props.Layout = LayoutSpec{Intrinsic: IntrinsicFixedPixels, FixedSize: size}
	w.Props.Input = InputNoHit
	return sid
}

// CustomOptions configure a custom widget.
type CustomOptions struct {
	Size   rendering.Size
	Expand bool
	// Draw is called with coordinates local to the widget.
	Draw func(rc *RenderContext)
	// Data is copied into the custom-property pool and hashed with the
	// widget, so changing it repaints.
	Data []byte
	// Hit makes the widget a hit-test target.
	Hit bool
}

// Custom declares a widget drawn by a callback.
func (c *Context) Custom(id string, opts CustomOptions) WidgetID {
	cid, _ := c.addWidget(TypeCustom, id, c.parent(), false)
	if cid == NullID {
		return NullID
	}
	w := &c.widgets[cid]
	w.Props.Layout = LayoutSpec{Intrinsic: IntrinsicFixedPixels, FixedSize: opts.Size}
	if opts.Expand {
		w.Props.Layout.Flags |= LayoutExpandWidth
	}
	w.Props.Draw = opts.Draw
	w.Props.Input = InputNoHit
	if opts.Hit {
		w.Props.Input = 0
	}
	w.Props.Custom = nil
	if len(opts.Data) > 0 {
		b := c.custom.Alloc(len(opts.Data), 1)
		copy(b, opts.Data)
		w.Props.Custom = b
	}
	return cid
}

// CustomData allocates a zeroed T in the custom-property pool and attaches
// it to widget id for this frame. T must not contain pointers.
func CustomData[T any](c *Context, id WidgetID) *T {
	v := pool.New[T](c.custom)
	if c.Lookup(id, TypeNone) {
		c.widgets[id].Props.Custom = unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
	}
	return v
}

// CustomValue reads back the value attached with CustomData while the
// widget is drawn. It reports false if the attached bytes do not have the
// size of T.
func CustomValue[T any](rc *RenderContext) (T, bool) {
	var v T
	b := rc.Widget().Props.Custom
	if uintptr(len(b)) != unsafe.Sizeof(v) || len(b) == 0 {
		return v, false
	}
	return *(*T)(unsafe.Pointer(unsafe.SliceData(b))), true
}
