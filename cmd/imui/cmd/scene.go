package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/imui/cmd/imui/internal/demo"
	"github.com/go-drift/imui/cmd/imui/internal/project"
	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

// sceneOptions are the flags shared by render and commands.
type sceneOptions struct {
	frames int
	width  int
	height int
	// clicks are pointer positions tapped before the last frame.
	clicks []rendering.Offset
	rest   []string
}

func parseSceneArgs(args []string) (sceneOptions, error) {
	opts := sceneOptions{frames: 1, width: 640, height: 240}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, error) {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				i++
				return args[i], nil
			}
			return "", fmt.Errorf("%s requires a value", arg)
		}
		switch arg {
		case "--frames":
			v, err := value()
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return opts, fmt.Errorf("--frames must be a positive integer (got %q)", v)
			}
			opts.frames = n
		case "--size":
			v, err := value()
			if err != nil {
				return opts, err
			}
			w, h, ok := strings.Cut(v, "x")
			width, errW := strconv.Atoi(w)
			height, errH := strconv.Atoi(h)
			if !ok || errW != nil || errH != nil || width < 1 || height < 1 {
				return opts, fmt.Errorf("--size must look like 640x480 (got %q)", v)
			}
			opts.width, opts.height = width, height
		case "--click":
			v, err := value()
			if err != nil {
				return opts, err
			}
			x, y, ok := strings.Cut(v, ",")
			px, errX := strconv.ParseFloat(x, 32)
			py, errY := strconv.ParseFloat(y, 32)
			if !ok || errX != nil || errY != nil {
				return opts, fmt.Errorf("--click must look like 40,60 (got %q)", v)
			}
			opts.clicks = append(opts.clicks, rendering.Offset{X: float32(px), Y: float32(py)})
		default:
			opts.rest = append(opts.rest, arg)
		}
	}
	return opts, nil
}

// runScene builds a context over backend and drives the demo scene. Each
// click takes three frames (hover, press, release) ahead of the requested
// frames. A skipped frame leaves the backend holding the last drawn one.
func runScene(backend rendering.Backend, opts sceneOptions) (*gui.Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	proj, err := project.Resolve(wd, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx, err := gui.New(proj.Options, gui.Collaborators{Backend: backend})
	if err != nil {
		return nil, err
	}
	ctx.SetScreenSize(float32(opts.width), float32(opts.height))
	scene := &demo.Scene{Title: proj.AppName}

	frame := func() error {
		ctx.BeginFrame()
		scene.Build(ctx)
		if err := ctx.EndFrame(); err != nil {
			return err
		}
		_, err := ctx.Render()
		return err
	}

	// The first frame lays out so clicks hit real widgets.
	if err := frame(); err != nil {
		ctx.Destroy()
		return nil, err
	}
	for _, p := range opts.clicks {
		ctx.SetMousePosition(p.X, p.Y)
		steps := []func(){
			func() {},
			func() { ctx.SetMouseButton(gui.MouseLeft, true) },
			func() { ctx.SetMouseButton(gui.MouseLeft, false) },
		}
		for _, step := range steps {
			step()
			if err := frame(); err != nil {
				ctx.Destroy()
				return nil, err
			}
		}
	}
	for i := 1; i < opts.frames; i++ {
		if err := frame(); err != nil {
			ctx.Destroy()
			return nil, err
		}
	}
	return ctx, nil
}
