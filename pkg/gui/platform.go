package gui

import (
	"sync"
	"time"

	"github.com/go-drift/imui/pkg/rendering"
	"golang.org/x/image/font"
)

// TextMeasurer sizes text for layout and caret placement.
type TextMeasurer interface {
	MeasureText(text string, face font.Face) rendering.Size
	// CharacterPosition returns the x offset of the byte index within text.
	CharacterPosition(text string, face font.Face, index int) float32
}

// Platform is the host integration used by the engine.
type Platform interface {
	CopyTextToClipboard(text string)
	ClipboardText() string
	// SetInputMethodEditor shows or hides the IME composition window at
	// the given screen rect.
	SetInputMethodEditor(enabled bool, at rendering.Rect)
	TimeMilliseconds() int64
	PerformanceCounter() uint64
	PerformanceFrequency() uint64
}

// TextEditState describes the text field currently being edited. The
// engine folds it into the frame digest so caret movement repaints.
type TextEditState interface {
	Cursor() int
	SelectStart() int
	SelectEnd() int
	Buffer() []byte
}

// SystemPlatform uses the process clock and an in-memory clipboard.
type SystemPlatform struct {
	mu        sync.Mutex
	clipboard string
	start     time.Time
	imeOn     bool
	imeRect   rendering.Rect
}

// NewSystemPlatform returns a platform whose clocks start now.
func NewSystemPlatform() *SystemPlatform {
	return &SystemPlatform{start: time.Now()}
}

func (p *SystemPlatform) CopyTextToClipboard(text string) {
	p.mu.Lock()
	p.clipboard = text
	p.mu.Unlock()
}

func (p *SystemPlatform) ClipboardText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clipboard
}

func (p *SystemPlatform) SetInputMethodEditor(enabled bool, at rendering.Rect) {
	p.mu.Lock()
	p.imeOn, p.imeRect = enabled, at
	p.mu.Unlock()
}

// InputMethodEditor returns the last IME request.
func (p *SystemPlatform) InputMethodEditor() (bool, rendering.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.imeOn, p.imeRect
}

func (p *SystemPlatform) TimeMilliseconds() int64 {
	return time.Since(p.start).Milliseconds()
}

func (p *SystemPlatform) PerformanceCounter() uint64 {
	return uint64(time.Since(p.start).Nanoseconds())
}

func (p *SystemPlatform) PerformanceFrequency() uint64 {
	return uint64(time.Second)
}
