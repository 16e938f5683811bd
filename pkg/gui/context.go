// Package gui is an immediate-mode GUI engine.
//
// Each frame the application calls [Context.BeginFrame], declares its
// widgets through builders such as [Context.BeginWindow] and
// [Context.Button], then calls [Context.EndFrame] and [Context.Render].
// Widgets are stored in a fixed arena and matched across frames by a hash
// of their identifier and their parent's hash, so state such as window
// position and scroll offset survives between frames without the caller
// holding on to anything. Widgets not declared in a frame are destroyed at
// its end.
//
// Render compares a digest of the widget tree with the previous one and
// skips drawing when nothing visible changed.
//
// A Context is not safe for concurrent use.
package gui

import (
	"fmt"
	"log"

	"github.com/cespare/xxhash/v2"
	"github.com/go-drift/imui/pkg/config"
	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/pool"
	"github.com/go-drift/imui/pkg/rendering"
	"github.com/go-drift/imui/pkg/text"
	"github.com/go-drift/imui/pkg/theme"
	"golang.org/x/image/font"
)

// Collaborators are the host services a Context uses. Nil fields get
// defaults: a [rendering.Recorder] sized by RenderCommandsQueueSize, the
// basic-font [text.Measurer] and a [SystemPlatform].
type Collaborators struct {
	Backend  rendering.Backend
	Measurer TextMeasurer
	Platform Platform
}

// Context owns the widget arena and all per-frame state.
type Context struct {
	opts     config.Options
	reporter guierrors.Reporter

	backend  rendering.Backend
	measurer TextMeasurer
	platform Platform

	widgets   []Widget
	buckets   []WidgetID
	firstFree WidgetID
	live      int

	fonts []font.Face
	theme *theme.Theme

	screen      rendering.Size
	frame       uint64
	inFrame     bool
	ended       bool
	destroyed   bool
	stats       FrameStats
	prevStats   FrameStats
	stack       []WidgetID
	root        WidgetID
	debugWindow WidgetID
	nextSort    uint32
	windows     int

	input     Input
	edges     edges
	feedback  Feedback
	titleDrag bool

	digest     *xxhash.Digest
	scratch    []byte
	lastDigest uint64
	hasDigest  bool
	force      []forceEntry
	fired      []WidgetID

	strings *pool.StringPool
	custom  *pool.CustomPool

	textEdit   TextEditState
	textEditID WidgetID
	clipDepth  int

	warnedExpand bool
}

// New validates opts, fills defaults and allocates the arena.
func New(opts config.Options, collab Collaborators) (*Context, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, guierrors.New("gui.New", guierrors.KindConfig, err)
	}

	c := &Context{
		opts:     opts,
		reporter: guierrors.Reporter{Behaviour: opts.AssertBehaviour},
		backend:  collab.Backend,
		measurer: collab.Measurer,
		platform: collab.Platform,
		widgets:  make([]Widget, opts.MaxWidgets+1),
		buckets:  make([]WidgetID, opts.HashTableSize),
		fonts:    make([]font.Face, 1, opts.MaxFonts),
		digest:   xxhash.New(),
		force:    make([]forceEntry, 0, opts.ForceRenderQueueSize),
		strings:  pool.NewStringPool(opts.StringMemoryPoolSize),
		custom:   pool.NewCustomPool(opts.CustomMemoryPoolSize),
		nextSort: 1,
	}
	if c.backend == nil {
		c.backend = rendering.NewRecorder(opts.RenderCommandsQueueSize, opts.StringMemoryPoolSize)
	}
	if c.measurer == nil {
		c.measurer = text.Measurer{}
	}
	if c.platform == nil {
		c.platform = NewSystemPlatform()
	}
	c.fonts[0] = text.DefaultFace()
	c.InitDefaultTheme()
	for s, v := range opts.Theme {
		c.theme.Set(s, v)
	}
	c.initFreeList()
	return c, nil
}

// Destroy releases the arena. The context must not be used afterwards.
func (c *Context) Destroy() {
	c.widgets = nil
	c.buckets = nil
	c.force = nil
	c.fonts = nil
	c.stack = nil
	c.inFrame = false
	c.destroyed = true
}

// Backend returns the backend Render draws to.
func (c *Context) Backend() rendering.Backend { return c.backend }

// Theme returns the live theme table.
func (c *Context) Theme() *theme.Theme { return c.theme }

// Frame returns the current frame number. The first frame is 1.
func (c *Context) Frame() uint64 { return c.frame }

// Err returns the first error recorded under the exception assert
// behaviour since the last BeginFrame.
func (c *Context) Err() error { return c.reporter.Err() }

// SetScreenSize sets the root widget's size.
func (c *Context) SetScreenSize(width, height float32) {
	c.screen = rendering.Size{Width: width, Height: height}
}

// ScreenSize returns the size set by SetScreenSize.
func (c *Context) ScreenSize() rendering.Size { return c.screen }

// InitDefaultTheme resets every style to the built-in default.
func (c *Context) InitDefaultTheme() {
	c.theme = theme.Default()
}

// SetWidgetStyle overrides one theme entry.
func (c *Context) SetWidgetStyle(style theme.Style, value uint32) {
	if style < 0 || style >= theme.StyleCount {
		c.report("gui.SetWidgetStyle", guierrors.KindUsage, fmt.Errorf("unknown style %d", style), NullID)
		return
	}
	c.theme.Set(style, value)
}

// AddFont registers a face and returns its id. When the table is full the
// default face id is returned.
func (c *Context) AddFont(face font.Face) FontID {
	if face == nil {
		return 0
	}
	if len(c.fonts) >= c.opts.MaxFonts || len(c.fonts) > 255 {
		c.report("gui.AddFont", guierrors.KindCapacity, guierrors.ErrFontTableFull, NullID)
		return 0
	}
	c.fonts = append(c.fonts, face)
	return FontID(len(c.fonts) - 1)
}

func (c *Context) face(id FontID) font.Face {
	if int(id) < len(c.fonts) {
		return c.fonts[id]
	}
	return c.fonts[0]
}

// SetTextEdit makes state the active text edit for widget id. Render draws
// its caret and selection over the widget. A nil state clears it and
// hides the IME window.
func (c *Context) SetTextEdit(id WidgetID, state TextEditState) {
	if state == nil {
		c.clearTextEdit()
		return
	}
	c.textEdit, c.textEditID = state, id
}

func (c *Context) clearTextEdit() {
	if c.textEdit == nil {
		return
	}
	c.textEdit, c.textEditID = nil, NullID
	c.platform.SetInputMethodEditor(false, rendering.Rect{})
}

// ClipboardText returns the platform clipboard.
func (c *Context) ClipboardText() string { return c.platform.ClipboardText() }

// CopyToClipboard writes text to the platform clipboard.
func (c *Context) CopyToClipboard(text string) { c.platform.CopyTextToClipboard(text) }

// BeginFrame starts a frame: it resets the per-frame pools, runs the input
// pass against the previous frame's layout and opens the root widget.
func (c *Context) BeginFrame() {
	if c.destroyed {
		c.report("gui.BeginFrame", guierrors.KindUsage, guierrors.ErrOutsideFrame, NullID)
		return
	}
	if c.inFrame {
		c.report("gui.BeginFrame", guierrors.KindUsage, guierrors.ErrNestedFrame, NullID)
		return
	}
	c.frame++
	c.inFrame = true
	c.ended = false
	c.reporter.Clear()
	c.prevStats = c.stats
	c.stats = FrameStats{Frame: c.frame}
	c.strings.Reset()
	c.custom.Reset()

	c.processInput()

	c.stack = c.stack[:0]
	id, _ := c.addWidget(TypeRoot, "root", NullID, true)
	c.root = id
	if id == NullID {
		return
	}
	w := &c.widgets[id]
	w.Props.Layout = LayoutSpec{
		Direction: DirectionFree,
		Intrinsic: IntrinsicFixedPixels,
		FixedSize: c.screen,
		Flags:     LayoutIntrinsicSizeIsMaxSize,
	}
	w.Props.Input = InputNoHit
	w.Props.Background = c.theme.Color(theme.StyleBackground)
	c.stack = append(c.stack, id)
}

// EndFrame closes the frame: it destroys widgets that were not declared,
// lays out the tree and computes global rects. Under the exception assert
// behaviour it returns the first recorded error.
func (c *Context) EndFrame() error {
	if !c.inFrame {
		c.report("gui.EndFrame", guierrors.KindUsage, guierrors.ErrOutsideFrame, NullID)
		return c.reporter.Err()
	}
	if len(c.stack) != 1 {
		top := c.current()
		c.stack = c.stack[:min(len(c.stack), 1)]
		c.report("gui.EndFrame", guierrors.KindUsage, guierrors.ErrUnbalanced, top)
	}

	c.sweep()

	start := c.platform.PerformanceCounter()
	if c.root != NullID {
		c.layoutWidget(Constraints{Max: c.screen}, c.root)
		c.updateGlobalRect(c.root, rendering.Offset{})
	}
	c.stats.LayoutDuration = c.elapsed(start)

	c.stats.Live = c.live
	c.stats.StringPool = c.strings.Stats()
	c.stats.CustomPool = c.custom.Stats()
	if c.stats.StringPool.Overflows > 0 || c.stats.CustomPool.Overflows > 0 {
		log.Printf("imui: frame %d pool overflow (strings %d, custom %d)",
			c.frame, c.stats.StringPool.Overflows, c.stats.CustomPool.Overflows)
	}

	if debugChecks {
		c.verify("gui.EndFrame")
	}
	c.inFrame = false
	c.ended = true
	return c.reporter.Err()
}

func (c *Context) current() WidgetID {
	if len(c.stack) == 0 {
		return NullID
	}
	return c.stack[len(c.stack)-1]
}

func (c *Context) report(op string, kind guierrors.ErrorKind, err error, id WidgetID) {
	e := guierrors.New(op, kind, err)
	e.WidgetID = int32(id)
	c.reporter.Report(e)
}
