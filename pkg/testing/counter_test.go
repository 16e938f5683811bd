package testing

import (
	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

// counter is a window with a "+" button and a label showing the count.
type counter struct {
	count int
}

func (c *counter) build(ctx *gui.Context) {
	ctx.BeginWindow("counter", "Counter", gui.WindowOptions{Position: rendering.Offset{X: 10, Y: 10}})
	if ctx.Button("inc", "+") {
		c.count++
	}
	ctx.Labelf("n", "%d", c.count)
	ctx.EndWindow()
}
