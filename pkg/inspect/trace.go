package inspect

import (
	"sync"
	"time"

	"github.com/go-drift/imui/pkg/gui"
)

const (
	frameTraceSamplesDefault   = 240
	defaultFrameTraceThreshold = 16667 * time.Microsecond
)

// FrameSample is a single frame trace sample.
type FrameSample struct {
	Timestamp int64   `json:"ts"`
	Frame     uint64  `json:"frame"`
	LayoutMs  float64 `json:"layoutMs"`
	RenderMs  float64 `json:"renderMs"`
	New       int     `json:"new"`
	Reused    int     `json:"reused"`
	Destroyed int     `json:"destroyed"`
	Live      int     `json:"live"`
	DrawCalls int     `json:"drawCalls"`
	Rendered  bool    `json:"rendered"`
	Skipped   bool    `json:"skipped,omitempty"`
}

// FrameMs is the time spent in layout and rendering.
func (s FrameSample) FrameMs() float64 { return s.LayoutMs + s.RenderMs }

func sampleFromStats(st gui.FrameStats, now time.Time) FrameSample {
	return FrameSample{
		Timestamp: now.UnixMilli(),
		Frame:     st.Frame,
		LayoutMs:  durationToMillis(st.LayoutDuration),
		RenderMs:  durationToMillis(st.RenderDuration),
		New:       st.New,
		Reused:    st.Reused,
		Destroyed: st.Destroyed,
		Live:      st.Live,
		DrawCalls: st.DrawCalls,
		Rendered:  st.Rendered,
		Skipped:   st.Skipped,
	}
}

// FrameTimeline is the /frames response shape.
type FrameTimeline struct {
	Samples       []FrameSample `json:"samples"`
	DroppedFrames int           `json:"droppedFrames"`
	SkippedFrames int           `json:"skippedFrames"`
	ThresholdMs   float64       `json:"thresholdMs"`
}

// FrameTraceBuffer stores recent frame samples in a ring buffer.
type FrameTraceBuffer struct {
	mu        sync.RWMutex
	samples   []FrameSample
	index     int
	count     int
	dropped   int
	skipped   int
	threshold time.Duration
}

// NewFrameTraceBuffer creates a new frame trace buffer.
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = frameTraceSamplesDefault
	}
	if threshold <= 0 {
		threshold = defaultFrameTraceThreshold
	}
	return &FrameTraceBuffer{
		samples:   make([]FrameSample, capacity),
		threshold: threshold,
	}
}

// Capacity returns the buffer capacity.
func (b *FrameTraceBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Add records a frame sample. Frames slower than the threshold count as
// dropped; frames whose render was skipped are counted separately.
func (b *FrameTraceBuffer) Add(sample FrameSample) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if sample.FrameMs() > durationToMillis(b.threshold) {
		b.dropped++
	}
	if sample.Skipped {
		b.skipped++
	}
	b.mu.Unlock()
}

// Snapshot returns a chronological copy of samples and stats.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return FrameTimeline{ThresholdMs: durationToMillis(b.threshold)}
	}

	result := make([]FrameSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return FrameTimeline{
		Samples:       result,
		DroppedFrames: b.dropped,
		SkippedFrames: b.skipped,
		ThresholdMs:   durationToMillis(b.threshold),
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
