// Package demo builds the scene the imui CLI renders.
package demo

import (
	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

// LogLines is the number of rows in the scrolling log window.
const LogLines = 24

// Scene is a small stateful UI exercising windows, containers, buttons,
// labels, a scroll area and a custom widget.
type Scene struct {
	Title  string
	Clicks int
	Level  int32
}

type gauge struct {
	Level, Limit int32
}

const gaugeLimit = 10

var (
	gaugeTrack = rendering.Color(0xFF3A3A42)
	gaugeFill  = rendering.Color(0xFF4F9DDE)
)

// Build declares the scene for one frame.
func (s *Scene) Build(c *gui.Context) {
	title := s.Title
	if title == "" {
		title = "imui"
	}

	c.BeginWindow("controls", title, gui.WindowOptions{Position: rendering.Offset{X: 16, Y: 16}})
	c.Labelf("clicks", "Clicks: %d", s.Clicks)
	if c.Button("inc", "Click me") {
		s.Clicks++
	}

	row := c.ContainerStyle()
	row.Direction = gui.DirectionHorizontal
	c.BeginContainer("levels", row)
	if c.Button("down", "-") && s.Level > 0 {
		s.Level--
	}
	c.Labelf("level", "Level %d", s.Level)
	if c.Button("up", "+") && s.Level < gaugeLimit {
		s.Level++
	}
	c.EndContainer()

	id := c.Custom("gauge", gui.CustomOptions{
		Size:   rendering.Size{Height: 12},
		Expand: true,
		Draw:   drawGauge,
	})
	g := gui.CustomData[gauge](c, id)
	g.Level, g.Limit = s.Level, gaugeLimit
	c.EndWindow()

	c.BeginWindow("log", "Log", gui.WindowOptions{
		Position: rendering.Offset{X: 340, Y: 16},
		Size:     rendering.Size{Width: 220, Height: 160},
	})
	for i := range LogLines {
		c.Labelf(c.WithIndex("line", i), "line %02d", i)
	}
	c.EndWindow()
}

func drawGauge(rc *gui.RenderContext) {
	b := rc.Bounds()
	rc.DrawRectangle(b, gaugeTrack)
	g, ok := gui.CustomValue[gauge](rc)
	if !ok || g.Limit <= 0 {
		return
	}
	fill := b
	fill.Right = b.Left + b.Width()*float32(g.Level)/float32(g.Limit)
	rc.DrawRectangle(fill, gaugeFill)
}
