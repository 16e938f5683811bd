package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-drift/imui/cmd/imui/internal/demo"
	"github.com/go-drift/imui/cmd/imui/internal/project"
	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/inspect"
	"github.com/go-drift/imui/pkg/rendering"
)

const defaultInspectPort = 9240

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Run the demo scene with the HTTP inspector",
		Long: `Run the demo scene at 60 frames per second on the software
rasterizer and serve its state over HTTP until interrupted.

Endpoints:
  /widget-tree    Widget tree of the last frame (JSON)
  /stats          Statistics and pointer feedback of the last frame
  /frames         Recent frame timings (?limit=N&min_ms=X&rendered=BOOL)
  /frame.png      Last drawn frame
  /health         Liveness check

Flags:
  --port N        Port to listen on (default: 9240, 0 picks a free port)
  --size WxH      Screen size in pixels (default: 640x240)`,
		Usage: "imui serve [--port N] [--size WxH]",
		Run:   runServe,
	})
}

func runServe(args []string) error {
	opts, err := parseSceneArgs(args)
	if err != nil {
		return err
	}
	port := defaultInspectPort
	for i := 0; i < len(opts.rest); i++ {
		switch opts.rest[i] {
		case "--port":
			if i+1 >= len(opts.rest) {
				return fmt.Errorf("--port requires a number")
			}
			p, err := strconv.Atoi(opts.rest[i+1])
			if err != nil || p < 0 || p > 65535 {
				return fmt.Errorf("invalid port %q", opts.rest[i+1])
			}
			port = p
			i++
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: imui serve [--port N] [--size WxH]", opts.rest[i])
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	proj, err := project.Resolve(wd, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	backend := rendering.NewRasterBackend(opts.width, opts.height)
	ctx, err := gui.New(proj.Options, gui.Collaborators{Backend: backend})
	if err != nil {
		return err
	}
	defer ctx.Destroy()
	ctx.SetScreenSize(float32(opts.width), float32(opts.height))

	in := inspect.New(0)
	bound, err := in.Start(port)
	if err != nil {
		return err
	}
	defer in.Stop()
	fmt.Printf("Inspector listening on http://localhost:%d (Ctrl+C to stop)\n", bound)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serveLoop(sigCtx, ctx, &demo.Scene{Title: proj.AppName}, in, backend, time.Second/60)
}

// serveLoop drives the scene once per tick until ctx is done.
func serveLoop(ctx context.Context, c *gui.Context, scene *demo.Scene, in *inspect.Inspector, backend *rendering.RasterBackend, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		c.BeginFrame()
		scene.Build(c)
		if err := c.EndFrame(); err != nil {
			return err
		}
		drawn, err := c.Render()
		if err != nil {
			return err
		}
		in.Publish(c)
		if drawn {
			in.PublishImage(backend.Image())
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
