package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-drift/imui/pkg/config"
	"github.com/go-drift/imui/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "commands",
		Short: "List the draw commands of the demo scene",
		Long: `Run the demo scene against the recording backend and print the
command queue of the last drawn frame.

Accepts the same --frames, --size and --click flags as render.

Usage:
  imui commands
  imui commands --click 40,60`,
		Usage: "imui commands [--frames N] [--size WxH] [--click X,Y]",
		Run:   runCommands,
	})
}

func runCommands(args []string) error {
	opts, err := parseSceneArgs(args)
	if err != nil {
		return err
	}
	if len(opts.rest) > 0 {
		return fmt.Errorf("unknown flag %q\n\nUsage: imui commands [--frames N] [--size WxH] [--click X,Y]", opts.rest[0])
	}

	rec := rendering.NewRecorder(config.DefaultRenderCommandsQueue, config.DefaultStringMemoryPoolSize)
	ctx, err := runScene(rec, opts)
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, cmd := range rec.Commands() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, cmd.Kind, describeCommand(cmd))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n := rec.Dropped(); n > 0 {
		fmt.Printf("\n%d commands dropped (queue full)\n", n)
	}
	return nil
}

func describeCommand(cmd rendering.Command) string {
	rect := func(r rendering.Rect) string {
		return fmt.Sprintf("(%g,%g %gx%g)", r.Left, r.Top, r.Width(), r.Height())
	}
	switch cmd.Kind {
	case rendering.CmdBeginFrame:
		return fmt.Sprintf("#%08X", uint32(cmd.Color))
	case rendering.CmdRectangle:
		return fmt.Sprintf("%s #%08X", rect(cmd.Rect), uint32(cmd.Color))
	case rendering.CmdBorder:
		return fmt.Sprintf("%s width=%g #%08X", rect(cmd.Rect), cmd.Width, uint32(cmd.Color))
	case rendering.CmdText:
		return fmt.Sprintf("(%g,%g) %q #%08X", cmd.From.X, cmd.From.Y, cmd.Text, uint32(cmd.Color))
	case rendering.CmdImage, rendering.CmdPushClip:
		return rect(cmd.Rect)
	case rendering.CmdLine:
		return fmt.Sprintf("(%g,%g)-(%g,%g) width=%g #%08X", cmd.From.X, cmd.From.Y, cmd.To.X, cmd.To.Y, cmd.Width, uint32(cmd.Color))
	default:
		return ""
	}
}
