package gui

import (
	"time"

	"github.com/go-drift/imui/pkg/pool"
)

// FrameStats summarizes the most recent frame.
type FrameStats struct {
	Frame     uint64
	New       int
	Reused    int
	Destroyed int
	// Live is the number of used arena slots after the sweep.
	Live int

	// Rendered is true when the last Render call drew; Skipped when it
	// found nothing changed.
	Rendered  bool
	Skipped   bool
	DrawCalls int

	StringPool pool.Stats
	CustomPool pool.Stats

	LayoutDuration time.Duration
	RenderDuration time.Duration
}

// Stats returns statistics for the most recently ended frame, or the frame
// in progress.
func (c *Context) Stats() FrameStats {
	return c.stats
}

// elapsed converts a performance-counter delta to a duration.
func (c *Context) elapsed(start uint64) time.Duration {
	freq := c.platform.PerformanceFrequency()
	if freq == 0 {
		return 0
	}
	d := c.platform.PerformanceCounter() - start
	return time.Duration(float64(d) * float64(time.Second) / float64(freq))
}
