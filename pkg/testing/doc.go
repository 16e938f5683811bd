// Package testing drives a gui.Context frame by frame for tests.
//
// # Quick Start
//
// Create a harness, mount a build function, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    h := imuitest.NewHarnessWithT(t)
//	    count := 0
//	    h.Mount(func(c *gui.Context) {
//	        c.BeginWindow("w", "Counter", gui.WindowOptions{})
//	        if c.Button("inc", "+") {
//	            count++
//	        }
//	        c.Labelf("n", "%d", count)
//	        c.EndWindow()
//	    })
//
//	    h.Tap(imuitest.ByText("+"))
//
//	    if !h.Find(imuitest.ByText("1")).Exists() {
//	        t.Error("expected label '1'")
//	    }
//	}
//
// Each Pump runs BeginFrame, the build function, EndFrame and Render, so
// input set between pumps is seen by the next frame exactly as the host
// glue would deliver it.
//
// # Snapshot Testing
//
// Capture and compare widget tree and draw command snapshots:
//
//	snapshot := h.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	IMUI_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Time
//
// Forced renders are scheduled against the harness clock:
//
//	h.Clock().Advance(100 * time.Millisecond)
//	h.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import imuitest "github.com/go-drift/imui/pkg/testing"
package testing
