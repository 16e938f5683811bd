package gui

import (
	"testing"
	"unicode/utf8"

	"github.com/go-drift/imui/pkg/config"
	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/rendering"
	"golang.org/x/image/font"
)

// Every rune is 8x10 so expected rects can be computed by hand.
type monoMeasurer struct{}

func (monoMeasurer) MeasureText(s string, _ font.Face) rendering.Size {
	return rendering.Size{Width: float32(8 * utf8.RuneCountInString(s)), Height: 10}
}

func (monoMeasurer) CharacterPosition(_ string, _ font.Face, index int) float32 {
	return float32(8 * index)
}

type manualPlatform struct {
	now       int64
	clipboard string
	imeOn     bool
	imeRect   rendering.Rect
}

func (p *manualPlatform) CopyTextToClipboard(s string) { p.clipboard = s }
func (p *manualPlatform) ClipboardText() string { return p.clipboard }
func (p *manualPlatform) SetInputMethodEditor(on bool, at rendering.Rect) {
	p.imeOn, p.imeRect = on, at
}
func (p *manualPlatform) TimeMilliseconds() int64 { return p.now }
func (p *manualPlatform) PerformanceCounter() uint64 { return uint64(p.now) * 1000 }
func (p *manualPlatform) PerformanceFrequency() uint64 { return 1_000_000 }

type fixture struct {
	ctx      *Context
	rec      *rendering.Recorder
	platform *manualPlatform
}

func newFixture(t *testing.T, configure func(*config.Options)) *fixture {
	t.Helper()
	opts := config.Defaults()
	opts.MaxWidgets = 256
	opts.HashTableSize = 0
	opts.AssertBehaviour = guierrors.AssertError
	if configure != nil {
		configure(&opts)
	}
	f := &fixture{
		rec:      rendering.NewRecorder(0, 1<<16),
		platform: &manualPlatform{},
	}
	ctx, err := New(opts, Collaborators{Backend: f.rec, Measurer: monoMeasurer{}, Platform: f.platform})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx.SetScreenSize(800, 600)
	f.ctx = ctx
	return f
}

// frame runs one BeginFrame/EndFrame pair and fails on a recorded error.
func (f *fixture) frame(t *testing.T, build func(c *Context)) {
	t.Helper()
	f.ctx.BeginFrame()
	if build != nil {
		build(f.ctx)
	}
	if err := f.ctx.EndFrame(); err != nil {
		t.Fatalf("frame %d: EndFrame() error = %v", f.ctx.Frame(), err)
	}
}

func (f *fixture) render(t *testing.T) bool {
	t.Helper()
	drawn, err := f.ctx.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return drawn
}

// lookup finds a widget by identity the same way addWidget does.
func lookup(c *Context, typ WidgetType, identifier string, parent WidgetID) WidgetID {
	parentHash := rootParentHash
	if parent != NullID {
		parentHash = c.widgets[parent].Hash
	}
	return c.find(identityHash(typ, identifier, parentHash))
}

func windowID(c *Context, identifier string) WidgetID {
	return lookup(c, TypeWindow, identifier, NullID)
}

func globalRect(t *testing.T, c *Context, id WidgetID) rendering.Rect {
	t.Helper()
	w, ok := c.Widget(id)
	if !ok {
		t.Fatalf("widget %d is not live", id)
	}
	return w.Props.Computed.GlobalRect
}

func countKind(cmds []rendering.Command, kind rendering.CommandKind) int {
	n := 0
	for _, cmd := range cmds {
		if cmd.Kind == kind {
			n++
		}
	}
	return n
}
