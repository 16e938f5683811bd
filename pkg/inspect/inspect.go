// Package inspect serves snapshots of a running gui.Context over HTTP.
//
// The context is not safe for concurrent use, so the UI goroutine calls
// [Inspector.Publish] after each frame and the handlers only read the
// published copies.
package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

// maxTreeDepth limits recursion depth when serializing the widget tree.
const maxTreeDepth = 500

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeRect is a JSON-safe rendering.Rect.
type SafeRect struct {
	X      SafeFloat `json:"x"`
	Y      SafeFloat `json:"y"`
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

func safeRect(r rendering.Rect) SafeRect {
	return SafeRect{
		X:      SafeFloat(r.Left),
		Y:      SafeFloat(r.Top),
		Width:  SafeFloat(r.Width()),
		Height: SafeFloat(r.Height()),
	}
}

// WidgetTreeNode is a node in the serialized widget tree.
type WidgetTreeNode struct {
	ID            gui.WidgetID     `json:"id"`
	Type          string           `json:"type"`
	Text          string           `json:"text,omitempty"`
	Rect          SafeRect         `json:"rect"`
	ContentHeight SafeFloat        `json:"contentHeight,omitempty"`
	Scroll        SafeFloat        `json:"scroll,omitempty"`
	Depth         int              `json:"depth"`
	Ignored       bool             `json:"ignored,omitempty"`
	Hovered       bool             `json:"hovered,omitempty"`
	Children      []WidgetTreeNode `json:"children,omitempty"`
}

// Inspector holds the latest published snapshot and a frame timeline.
type Inspector struct {
	mu       sync.RWMutex
	tree     *WidgetTreeNode
	stats    gui.FrameStats
	feedback gui.Feedback
	frame    *image.RGBA
	trace    *FrameTraceBuffer

	srvMu    sync.Mutex
	server   *http.Server
	listener net.Listener

	now func() time.Time
}

// New returns an inspector keeping the last samples frames.
func New(samples int) *Inspector {
	return &Inspector{
		trace: NewFrameTraceBuffer(samples, 0),
		now:   time.Now,
	}
}

// Trace returns the frame timeline buffer.
func (in *Inspector) Trace() *FrameTraceBuffer { return in.trace }

// Publish copies the widget tree and frame statistics of c. Call it on
// the goroutine that drives c, after Render.
func (in *Inspector) Publish(c *gui.Context) {
	var tree *WidgetTreeNode
	if root := c.Root(); c.Lookup(root, gui.TypeRoot) {
		node := serializeWidgetTree(c, root, 0)
		tree = &node
	}
	stats := c.Stats()
	in.trace.Add(sampleFromStats(stats, in.now()))

	in.mu.Lock()
	in.tree = tree
	in.stats = stats
	in.feedback = c.Feedback()
	in.mu.Unlock()
}

// PublishImage copies the last drawn frame, served on /frame.png.
func (in *Inspector) PublishImage(img image.Image) {
	b := img.Bounds()
	cp := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(cp, cp.Bounds(), img, b.Min, draw.Src)

	in.mu.Lock()
	in.frame = cp
	in.mu.Unlock()
}

// Handler returns the inspection endpoints.
func (in *Inspector) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/widget-tree", in.handleWidgetTree)
	mux.HandleFunc("/stats", in.handleStats)
	mux.HandleFunc("/frames", in.handleFrameTimeline)
	mux.HandleFunc("/frame.png", in.handleFrameImage)
	mux.HandleFunc("/health", handleHealth)
	return mux
}

// Start serves the endpoints on port and returns the bound port, which
// differs from port when port is 0.
func (in *Inspector) Start(port int) (int, error) {
	in.srvMu.Lock()
	defer in.srvMu.Unlock()

	if in.server != nil {
		return in.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("inspect server listen: %w", err)
	}
	server := &http.Server{Handler: in.Handler(), ReadHeaderTimeout: 5 * time.Second}
	in.server = server
	in.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			in.srvMu.Lock()
			in.server = nil
			in.listener = nil
			in.srvMu.Unlock()
			fmt.Printf("inspect server error: %v\n", err)
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop gracefully shuts down the server.
func (in *Inspector) Stop() {
	in.srvMu.Lock()
	server := in.server
	in.server = nil
	in.listener = nil
	in.srvMu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (in *Inspector) handleWidgetTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	in.mu.RLock()
	tree := in.tree
	in.mu.RUnlock()
	if tree == nil {
		http.Error(w, "no widget tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, tree)
}

func (in *Inspector) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	in.mu.RLock()
	st, fb := in.stats, in.feedback
	in.mu.RUnlock()

	resp := struct {
		Frame    FrameSample  `json:"frame"`
		Hovered  gui.WidgetID `json:"hovered"`
		Pressed  gui.WidgetID `json:"pressed"`
		Dragged  gui.WidgetID `json:"dragged"`
		Strings  int          `json:"stringPoolUsed"`
		Custom   int          `json:"customPoolUsed"`
		Overflow int          `json:"poolOverflows"`
	}{
		Frame:    sampleFromStats(st, in.now()),
		Hovered:  fb.Hovered,
		Pressed:  fb.Pressed,
		Dragged:  fb.Dragged,
		Strings:  st.StringPool.Used,
		Custom:   st.CustomPool.Used,
		Overflow: st.StringPool.Overflows + st.CustomPool.Overflows,
	}
	writeJSON(w, resp)
}

func (in *Inspector) handleFrameTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	resp := in.trace.Snapshot()
	applyFrameFilters(r, &resp)
	writeJSON(w, resp)
}

func (in *Inspector) handleFrameImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	in.mu.RLock()
	img := in.frame
	in.mu.RUnlock()
	if img == nil {
		http.Error(w, "no frame image", http.StatusServiceUnavailable)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, fmt.Sprintf("png encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// writeJSON encodes to a buffer first so encode errors can still set the
// status.
func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func applyFrameFilters(r *http.Request, resp *FrameTimeline) {
	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var filters []func(FrameSample) bool
	if v := parseFloatQuery(r, "min_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.FrameMs() >= v })
	}
	if v := parseFloatQuery(r, "layout_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.LayoutMs >= v })
	}
	if v := parseFloatQuery(r, "render_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.RenderMs >= v })
	}
	if value := r.URL.Query().Get("rendered"); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			filters = append(filters, func(s FrameSample) bool { return s.Rendered == parsed })
		}
	}

	if len(filters) > 0 {
		filtered := make([]FrameSample, 0, len(resp.Samples))
	outer:
		for _, sample := range resp.Samples {
			for _, f := range filters {
				if !f(sample) {
					continue outer
				}
			}
			filtered = append(filtered, sample)
		}
		resp.Samples = filtered
	}

	if limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

// serializeWidgetTree converts the arena subtree at id into its JSON form.
func serializeWidgetTree(c *gui.Context, id gui.WidgetID, depth int) WidgetTreeNode {
	w, _ := c.Widget(id)
	node := WidgetTreeNode{
		ID:            id,
		Type:          w.Type.String(),
		Text:          strings.Clone(w.Props.Text),
		Rect:          safeRect(w.Props.Computed.GlobalRect),
		ContentHeight: SafeFloat(w.Props.Computed.ContentSize.Height),
		Scroll:        SafeFloat(w.Props.ContentOffset.Y),
		Depth:         depth,
		Ignored:       w.Flags&gui.FlagIgnore != 0,
		Hovered:       c.IsHovered(id),
	}
	if depth < maxTreeDepth {
		for _, ch := range c.Children(id) {
			node.Children = append(node.Children, serializeWidgetTree(c, ch, depth+1))
		}
	}
	return node
}
