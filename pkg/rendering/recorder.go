package rendering

import (
	"image"

	"github.com/go-drift/imui/pkg/pool"
	"golang.org/x/image/font"
)

// CommandKind identifies a recorded draw call.
type CommandKind uint8

const (
	CmdBeginFrame CommandKind = iota
	CmdEndFrame
	CmdRectangle
	CmdBorder
	CmdText
	CmdImage
	CmdLine
	CmdPushClip
	CmdPopClip
)

func (k CommandKind) String() string {
	switch k {
	case CmdBeginFrame:
		return "beginFrame"
	case CmdEndFrame:
		return "endFrame"
	case CmdRectangle:
		return "rectangle"
	case CmdBorder:
		return "border"
	case CmdText:
		return "text"
	case CmdImage:
		return "image"
	case CmdLine:
		return "line"
	case CmdPushClip:
		return "pushClip"
	case CmdPopClip:
		return "popClip"
	default:
		return "unknown"
	}
}

// Command is one recorded draw call. Fields not used by Kind are zero.
type Command struct {
	Kind  CommandKind
	Rect  Rect
	From  Offset
	To    Offset
	Width float32
	Color Color
	Text  string
	Face  font.Face
	Image image.Image
}

// Recorder is a Backend that stores draw calls in a bounded queue so they can
// be inspected or replayed onto another backend later. Text is copied into
// the recorder's own pool, so commands stay valid after the engine resets its
// frame pools.
type Recorder struct {
	cmds    []Command
	limit   int
	dropped int
	depth   int
	text    *pool.StringPool
}

// NewRecorder creates a recorder holding at most limit commands per frame.
// A limit of zero or less means unbounded.
func NewRecorder(limit, textBytes int) *Recorder {
	capacity := limit
	if capacity <= 0 {
		capacity = 256
	}
	return &Recorder{
		cmds:  make([]Command, 0, capacity),
		limit: limit,
		text:  pool.NewStringPool(textBytes),
	}
}

func (r *Recorder) append(c Command) {
	if r.limit > 0 && len(r.cmds) >= r.limit {
		r.dropped++
		return
	}
	r.cmds = append(r.cmds, c)
}

// Commands returns the commands recorded since the last BeginFrame.
func (r *Recorder) Commands() []Command { return r.cmds }

// Dropped returns how many commands did not fit in the queue this frame.
func (r *Recorder) Dropped() int { return r.dropped }

// Depth returns the current clip nesting depth.
func (r *Recorder) Depth() int { return r.depth }

// TextStats returns usage of the recorder's text pool.
func (r *Recorder) TextStats() pool.Stats { return r.text.Stats() }

// Replay issues the recorded commands onto b in order.
func (r *Recorder) Replay(b Backend) {
	for i := range r.cmds {
		c := &r.cmds[i]
		switch c.Kind {
		case CmdBeginFrame:
			b.BeginFrame(c.Color)
		case CmdEndFrame:
			b.EndFrame()
		case CmdRectangle:
			b.DrawRectangle(c.Rect, c.Color)
		case CmdBorder:
			b.DrawBorder(c.Rect, c.Width, c.Color)
		case CmdText:
			b.DrawText(c.From, c.Text, c.Face, c.Color)
		case CmdImage:
			b.DrawImage(c.Rect, c.Image)
		case CmdLine:
			b.DrawLine(c.From, c.To, c.Width, c.Color)
		case CmdPushClip:
			b.PushClipRect(c.Rect)
		case CmdPopClip:
			b.PopClipRect()
		}
	}
}

func (r *Recorder) BeginFrame(background Color) {
	r.cmds = r.cmds[:0]
	r.dropped = 0
	r.depth = 0
	r.text.Reset()
	r.append(Command{Kind: CmdBeginFrame, Color: background})
}

func (r *Recorder) EndFrame() {
	r.append(Command{Kind: CmdEndFrame})
}

func (r *Recorder) DrawRectangle(rect Rect, color Color) {
	r.append(Command{Kind: CmdRectangle, Rect: rect, Color: color})
}

func (r *Recorder) DrawBorder(rect Rect, width float32, color Color) {
	r.append(Command{Kind: CmdBorder, Rect: rect, Width: width, Color: color})
}

func (r *Recorder) DrawText(position Offset, text string, face font.Face, color Color) {
	r.append(Command{Kind: CmdText, From: position, Text: r.text.Store(text), Face: face, Color: color})
}

func (r *Recorder) DrawImage(rect Rect, img image.Image) {
	r.append(Command{Kind: CmdImage, Rect: rect, Image: img})
}

func (r *Recorder) DrawLine(from, to Offset, width float32, color Color) {
	r.append(Command{Kind: CmdLine, From: from, To: to, Width: width, Color: color})
}

func (r *Recorder) PushClipRect(rect Rect) {
	r.depth++
	r.append(Command{Kind: CmdPushClip, Rect: rect})
}

func (r *Recorder) PopClipRect() {
	r.depth--
	r.append(Command{Kind: CmdPopClip})
}
