package testing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/imui/pkg/config"
	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

const (
	// DefaultTestWidth is the default screen width.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default screen height.
	DefaultTestHeight = 600
	// DefaultMaxWidgets keeps test arenas small.
	DefaultMaxWidgets = 1024
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: forced renders still pending")

// ErrNotMounted is returned by Pump before Mount.
var ErrNotMounted = errors.New("no build function mounted")

// Harness runs a gui.Context against a recording backend, a fake clock and
// a fixed-width text measurer.
type Harness struct {
	ctx      *gui.Context
	rec      *rendering.Recorder
	clock    *FakeClock
	platform *FakePlatform
	build    func(c *gui.Context)
	drawn    bool
}

// NewHarness creates a harness with opts. Zero options are filled from
// config defaults, except that errors are returned rather than panicking
// unless opts asks otherwise.
func NewHarness(opts config.Options) (*Harness, error) {
	if opts.MaxWidgets == 0 {
		opts.MaxWidgets = DefaultMaxWidgets
	}
	opts = opts.WithDefaults()
	clk := NewFakeClock()
	h := &Harness{
		rec:      rendering.NewRecorder(opts.RenderCommandsQueueSize, opts.StringMemoryPoolSize),
		clock:    clk,
		platform: NewFakePlatform(clk),
	}
	ctx, err := gui.New(opts, gui.Collaborators{
		Backend:  h.rec,
		Measurer: DefaultMeasurer,
		Platform: h.platform,
	})
	if err != nil {
		return nil, err
	}
	ctx.SetScreenSize(DefaultTestWidth, DefaultTestHeight)
	h.ctx = ctx
	return h, nil
}

// NewHarnessWithT creates a harness that records errors instead of
// panicking and is destroyed via t.Cleanup(). This is the recommended
// constructor for tests.
func NewHarnessWithT(t testing.TB) *Harness {
	t.Helper()
	opts := config.Defaults()
	opts.MaxWidgets = DefaultMaxWidgets
	opts.HashTableSize = 0
	opts.AssertBehaviour = guierrors.AssertError
	h, err := NewHarness(opts)
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	t.Cleanup(h.Cleanup)
	return h
}

// Cleanup destroys the context.
func (h *Harness) Cleanup() {
	h.ctx.Destroy()
}

// Context returns the context under test.
func (h *Harness) Context() *gui.Context { return h.ctx }

// Recorder returns the backend the context draws into.
func (h *Harness) Recorder() *rendering.Recorder { return h.rec }

// Clock returns the fake clock for advancing time in tests.
func (h *Harness) Clock() *FakeClock { return h.clock }

// Platform returns the fake platform.
func (h *Harness) Platform() *FakePlatform { return h.platform }

// SetSize sets the screen size used by the next frame.
func (h *Harness) SetSize(size rendering.Size) {
	h.ctx.SetScreenSize(size.Width, size.Height)
}

// Mount sets the build function and runs one frame.
func (h *Harness) Mount(build func(c *gui.Context)) error {
	h.build = build
	return h.Pump()
}

// Pump runs one frame: BeginFrame, the build function, EndFrame and
// Render.
func (h *Harness) Pump() error {
	if h.build == nil {
		return ErrNotMounted
	}
	h.ctx.BeginFrame()
	h.build(h.ctx)
	if err := h.ctx.EndFrame(); err != nil {
		return fmt.Errorf("frame %d: %w", h.ctx.Frame(), err)
	}
	drawn, err := h.ctx.Render()
	h.drawn = drawn
	if err != nil {
		return fmt.Errorf("frame %d render: %w", h.ctx.Frame(), err)
	}
	return nil
}

// PumpFrames runs n frames.
func (h *Harness) PumpFrames(n int) error {
	for range n {
		if err := h.Pump(); err != nil {
			return err
		}
	}
	return nil
}

// PumpAndSettle runs frames until no forced render is pending or the
// timeout is reached. Each frame advances the fake clock by 16ms.
func (h *Harness) PumpAndSettle(timeout time.Duration) error {
	const frameDuration = 16 * time.Millisecond
	var elapsed time.Duration
	for elapsed < timeout {
		if err := h.Pump(); err != nil {
			return err
		}
		if h.ctx.PendingForceRenders() == 0 {
			return nil
		}
		h.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// Drawn reports whether the last Pump reached the backend.
func (h *Harness) Drawn() bool { return h.drawn }

// Commands returns the draw commands of the last frame that was drawn.
func (h *Harness) Commands() []rendering.Command { return h.rec.Commands() }

// Find evaluates a finder against the current widget tree.
func (h *Harness) Find(finder Finder) FinderResult {
	return FinderResult{
		ctx:    h.ctx,
		ids:    finder.Evaluate(h.ctx),
		finder: finder,
	}
}
