package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-drift/imui/cmd/imui/internal/project"
	"github.com/go-drift/imui/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show resolved engine options",
		Long: `Print the project root, module path and the engine options resolved
from --config, the project's imui.yaml, or the built-in defaults.

Usage:
  imui config
  imui --config ./custom.yaml config`,
		Usage: "imui config",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q\n\nUsage: imui config", args[0])
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	proj, err := project.Resolve(wd, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	source := proj.ConfigPath
	if source == "" {
		source = "(defaults)"
	}
	module := proj.ModulePath
	if module == "" {
		module = "(none)"
	}
	o := proj.Options
	fmt.Printf("Project root:     %s\n", proj.Root)
	fmt.Printf("Module path:      %s\n", module)
	fmt.Printf("App name:         %s\n", proj.AppName)
	fmt.Printf("Config:           %s\n", source)
	fmt.Println()
	fmt.Printf("max_widgets:                %d\n", o.MaxWidgets)
	fmt.Printf("hash_table_size:            %d\n", o.HashTableSize)
	fmt.Printf("max_fonts:                  %d\n", o.MaxFonts)
	fmt.Printf("string_memory_pool_size:    %d\n", o.StringMemoryPoolSize)
	fmt.Printf("custom_memory_pool_size:    %d\n", o.CustomMemoryPoolSize)
	fmt.Printf("render_commands_queue_size: %d\n", o.RenderCommandsQueueSize)
	fmt.Printf("force_render_queue_size:    %d\n", o.ForceRenderQueueSize)
	fmt.Printf("assert_behaviour:           %s\n", o.AssertBehaviour)
	fmt.Printf("always_render:              %t\n", o.AlwaysRender)
	fmt.Printf("debug window nesting:       %t\n", !o.DontNestNonWindowRootElementsIntoDebugWindow)

	if len(o.Theme) > 0 {
		styles := make([]theme.Style, 0, len(o.Theme))
		for s := range o.Theme {
			styles = append(styles, s)
		}
		slices.Sort(styles)
		fmt.Println()
		fmt.Println("Theme overrides:")
		for _, s := range styles {
			fmt.Printf("  %-26s 0x%08X\n", s, o.Theme[s])
		}
	}
	return nil
}
