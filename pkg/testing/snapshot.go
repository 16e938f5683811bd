package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

// UpdateSnapshotsEnv makes MatchesFile rewrite golden files when set to 1.
const UpdateSnapshotsEnv = "IMUI_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the widget tree and the draw commands of the last
// rendered frame.
type Snapshot struct {
	Tree       *WidgetNode `json:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// WidgetNode is one widget in the serialized tree. IDs are per-type
// counters so they do not depend on arena slot allocation.
type WidgetNode struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	Rect     [4]float64    `json:"rect"`
	Children []*WidgetNode `json:"children,omitempty"`
}

// DisplayOp is one serialized draw command.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// CaptureSnapshot captures the current widget tree and the recorder's
// commands.
func (h *Harness) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if root := h.ctx.Root(); root != gui.NullID {
		snap.Tree = captureWidgetNode(h.ctx, root, &typeCounter{})
	}
	snap.DisplayOps = serializeCommands(h.rec.Commands())
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When IMUI_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureWidgetNode(c *gui.Context, id gui.WidgetID, counter *typeCounter) *WidgetNode {
	w, _ := c.Widget(id)
	typeName := w.Type.String()
	node := &WidgetNode{
		ID:   counter.next(typeName),
		Type: typeName,
		Text: strings.Clone(w.Props.Text),
		Rect: serializeRect(w.Props.Computed.GlobalRect),
	}
	for _, ch := range c.Children(id) {
		node.Children = append(node.Children, captureWidgetNode(c, ch, counter))
	}
	return node
}

func serializeCommands(cmds []rendering.Command) []DisplayOp {
	ops := make([]DisplayOp, 0, len(cmds))
	for i := range cmds {
		cmd := &cmds[i]
		op := DisplayOp{Op: cmd.Kind.String()}
		switch cmd.Kind {
		case rendering.CmdBeginFrame:
			op.Params = map[string]any{"color": serializeColor(cmd.Color)}
		case rendering.CmdRectangle:
			op.Params = map[string]any{"rect": serializeRect(cmd.Rect), "color": serializeColor(cmd.Color)}
		case rendering.CmdBorder:
			op.Params = map[string]any{"rect": serializeRect(cmd.Rect), "width": round2(float64(cmd.Width)), "color": serializeColor(cmd.Color)}
		case rendering.CmdText:
			op.Params = map[string]any{"at": serializeOffset(cmd.From), "text": cmd.Text, "color": serializeColor(cmd.Color)}
		case rendering.CmdImage:
			op.Params = map[string]any{"rect": serializeRect(cmd.Rect)}
			if cmd.Image != nil {
				b := cmd.Image.Bounds()
				op.Params["size"] = [2]int{b.Dx(), b.Dy()}
			}
		case rendering.CmdLine:
			op.Params = map[string]any{
				"from":  serializeOffset(cmd.From),
				"to":    serializeOffset(cmd.To),
				"width": round2(float64(cmd.Width)),
				"color": serializeColor(cmd.Color),
			}
		case rendering.CmdPushClip:
			op.Params = map[string]any{"rect": serializeRect(cmd.Rect)}
		}
		ops = append(ops, op)
	}
	return ops
}

func serializeRect(r rendering.Rect) [4]float64 {
	return [4]float64{round2(float64(r.Left)), round2(float64(r.Top)), round2(float64(r.Width())), round2(float64(r.Height()))}
}

func serializeOffset(o rendering.Offset) [2]float64 {
	return [2]float64{round2(float64(o.X)), round2(float64(o.Y))}
}

func serializeColor(c rendering.Color) string {
	return fmt.Sprintf("#%08X", uint32(c))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// marshalSnapshot round-trips through JSON values so a captured snapshot
// and one loaded from disk encode identically.
func marshalSnapshot(s *Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := range maxLen {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
