// Package config resolves engine init options from defaults and an optional
// imui.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/theme"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the newest config file version this build understands.
const SchemaVersion = "v1.0.0"

// FileName is the config file looked up by LoadOptional.
const FileName = "imui.yaml"

// Defaults used when an option is left at zero.
const (
	DefaultMaxWidgets            = 32767
	DefaultMaxFonts              = 32
	DefaultStringMemoryPoolSize  = 64 << 10
	DefaultCustomMemoryPoolSize  = 64 << 10
	DefaultRenderCommandsQueue   = 4096
	DefaultForceRenderQueueSize  = 256
	DefaultAssertBehaviourOption = "assert"
)

// Options are the recognized init options.
type Options struct {
	MaxWidgets              int
	HashTableSize           int
	MaxFonts                int
	StringMemoryPoolSize    int
	CustomMemoryPoolSize    int
	RenderCommandsQueueSize int
	ForceRenderQueueSize    int
	AssertBehaviour         guierrors.AssertBehaviour
	// DontNestNonWindowRootElementsIntoDebugWindow keeps widgets added
	// outside any window directly under the root.
	DontNestNonWindowRootElementsIntoDebugWindow bool
	// AlwaysRender disables the render-skip check.
	AlwaysRender bool
	// Theme overrides applied on top of the default theme.
	Theme map[theme.Style]uint32
}

// file mirrors the YAML layout of imui.yaml.
type file struct {
	Version                 string            `yaml:"version,omitempty"`
	MaxWidgets              int               `yaml:"max_widgets,omitempty"`
	HashTableSize           int               `yaml:"hash_table_size,omitempty"`
	MaxFonts                int               `yaml:"max_fonts,omitempty"`
	StringMemoryPoolSize    int               `yaml:"string_memory_pool_size,omitempty"`
	CustomMemoryPoolSize    int               `yaml:"custom_memory_pool_size,omitempty"`
	RenderCommandsQueueSize int               `yaml:"render_commands_queue_size,omitempty"`
	ForceRenderQueueSize    int               `yaml:"force_render_queue_size,omitempty"`
	AssertBehaviour         string            `yaml:"assert_behaviour,omitempty"`
	DontNestIntoDebugWindow bool              `yaml:"dont_nest_non_window_root_elements_into_debug_window,omitempty"`
	AlwaysRender            bool              `yaml:"always_render,omitempty"`
	Theme                   map[string]uint32 `yaml:"theme,omitempty"`
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		MaxWidgets:              DefaultMaxWidgets,
		HashTableSize:           DefaultMaxWidgets,
		MaxFonts:                DefaultMaxFonts,
		StringMemoryPoolSize:    DefaultStringMemoryPoolSize,
		CustomMemoryPoolSize:    DefaultCustomMemoryPoolSize,
		RenderCommandsQueueSize: DefaultRenderCommandsQueue,
		ForceRenderQueueSize:    DefaultForceRenderQueueSize,
		AssertBehaviour:         guierrors.AssertPanic,
	}
}

// WithDefaults fills zero fields from Defaults. HashTableSize follows
// MaxWidgets when unset.
func (o Options) WithDefaults() Options {
	d := Defaults()
	if o.MaxWidgets == 0 {
		o.MaxWidgets = d.MaxWidgets
	}
	if o.HashTableSize == 0 {
		o.HashTableSize = o.MaxWidgets
	}
	if o.MaxFonts == 0 {
		o.MaxFonts = d.MaxFonts
	}
	if o.StringMemoryPoolSize == 0 {
		o.StringMemoryPoolSize = d.StringMemoryPoolSize
	}
	if o.CustomMemoryPoolSize == 0 {
		o.CustomMemoryPoolSize = d.CustomMemoryPoolSize
	}
	if o.RenderCommandsQueueSize == 0 {
		o.RenderCommandsQueueSize = d.RenderCommandsQueueSize
	}
	if o.ForceRenderQueueSize == 0 {
		o.ForceRenderQueueSize = d.ForceRenderQueueSize
	}
	return o
}

// Validate rejects options the engine cannot run with.
func (o Options) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"max_widgets", o.MaxWidgets},
		{"hash_table_size", o.HashTableSize},
		{"max_fonts", o.MaxFonts},
		{"string_memory_pool_size", o.StringMemoryPoolSize},
		{"custom_memory_pool_size", o.CustomMemoryPoolSize},
		{"render_commands_queue_size", o.RenderCommandsQueueSize},
		{"force_render_queue_size", o.ForceRenderQueueSize},
	}
	for _, c := range checks {
		if c.v < 0 {
			return fmt.Errorf("%s must not be negative (got %d)", c.name, c.v)
		}
	}
	// Widget ids are int32 with slot 0 reserved.
	if o.MaxWidgets > 1<<30 {
		return fmt.Errorf("max_widgets too large (got %d)", o.MaxWidgets)
	}
	return nil
}

// Parse decodes imui.yaml content into options with defaults applied.
func Parse(data []byte) (Options, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Options{}, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := checkVersion(f.Version); err != nil {
		return Options{}, err
	}
	behaviour, err := guierrors.ParseAssertBehaviour(f.AssertBehaviour)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		MaxWidgets:              f.MaxWidgets,
		HashTableSize:           f.HashTableSize,
		MaxFonts:                f.MaxFonts,
		StringMemoryPoolSize:    f.StringMemoryPoolSize,
		CustomMemoryPoolSize:    f.CustomMemoryPoolSize,
		RenderCommandsQueueSize: f.RenderCommandsQueueSize,
		ForceRenderQueueSize:    f.ForceRenderQueueSize,
		AssertBehaviour:         behaviour,
		AlwaysRender:            f.AlwaysRender,
	}
	opts.DontNestNonWindowRootElementsIntoDebugWindow = f.DontNestIntoDebugWindow
	if len(f.Theme) > 0 {
		opts.Theme = make(map[theme.Style]uint32, len(f.Theme))
		for name, v := range f.Theme {
			s, ok := theme.ParseStyle(strings.TrimSpace(name))
			if !ok {
				return Options{}, fmt.Errorf("unknown theme style %q", name)
			}
			opts.Theme[s] = v
		}
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid config version %q", v)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) || semver.Compare(v, SchemaVersion) > 0 {
		return fmt.Errorf("config version %s not supported (this build reads %s)", v, SchemaVersion)
	}
	return nil
}

// Load reads options from path.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional reads imui.yaml from dir if present, otherwise returns
// Defaults.
func LoadOptional(dir string) (Options, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Options{}, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}
