package testing

import (
	"sync"
	"time"

	"github.com/go-drift/imui/pkg/rendering"
)

// FakeClock provides controllable time for deterministic frame tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// FakePlatform is a gui.Platform whose clocks read a FakeClock. It keeps
// the clipboard in memory and records the last input method request.
type FakePlatform struct {
	clock *FakeClock

	mu        sync.Mutex
	clipboard string
	imeOn     bool
	imeRect   rendering.Rect
}

// NewFakePlatform returns a platform reading clock.
func NewFakePlatform(clock *FakeClock) *FakePlatform {
	return &FakePlatform{clock: clock}
}

func (p *FakePlatform) CopyTextToClipboard(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clipboard = text
}

func (p *FakePlatform) ClipboardText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clipboard
}

func (p *FakePlatform) SetInputMethodEditor(enabled bool, at rendering.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.imeOn, p.imeRect = enabled, at
}

// InputMethodEditor returns the last state passed to SetInputMethodEditor.
func (p *FakePlatform) InputMethodEditor() (bool, rendering.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.imeOn, p.imeRect
}

func (p *FakePlatform) TimeMilliseconds() int64 { return p.clock.Now().UnixMilli() }

func (p *FakePlatform) PerformanceCounter() uint64 { return uint64(p.clock.Now().UnixNano()) }

func (p *FakePlatform) PerformanceFrequency() uint64 { return uint64(time.Second) }
