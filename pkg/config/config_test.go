package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/theme"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.MaxWidgets != 32767 || d.HashTableSize != d.MaxWidgets || d.MaxFonts != 32 {
		t.Errorf("Defaults() = %+v", d)
	}
	if d.AssertBehaviour != guierrors.AssertPanic {
		t.Errorf("AssertBehaviour = %v, want assert", d.AssertBehaviour)
	}
}

func TestWithDefaultsHashTableFollowsMaxWidgets(t *testing.T) {
	o := Options{MaxWidgets: 100}.WithDefaults()
	if o.HashTableSize != 100 {
		t.Errorf("HashTableSize = %d, want 100", o.HashTableSize)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
version: v1.0.0
max_widgets: 512
assert_behaviour: CONSOLE
dont_nest_non_window_root_elements_into_debug_window: true
theme:
  button_background: 4278190335
  window_padding: 12
`)
	o, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if o.MaxWidgets != 512 || o.HashTableSize != 512 {
		t.Errorf("sizes = %d/%d, want 512/512", o.MaxWidgets, o.HashTableSize)
	}
	if o.AssertBehaviour != guierrors.AssertLog {
		t.Errorf("AssertBehaviour = %v, want console", o.AssertBehaviour)
	}
	if !o.DontNestNonWindowRootElementsIntoDebugWindow {
		t.Error("expected debug window nesting to be disabled")
	}
	if o.Theme[theme.StyleWindowPadding] != 12 || o.Theme[theme.StyleButtonBackground] != 0xFF0000FF {
		t.Errorf("Theme = %v", o.Theme)
	}
	if o.StringMemoryPoolSize != DefaultStringMemoryPoolSize {
		t.Errorf("StringMemoryPoolSize = %d, want default", o.StringMemoryPoolSize)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "max_widgets: [", "failed to parse"},
		{"bad assert", "assert_behaviour: abort", "unknown assert behaviour"},
		{"bad style", "theme:\n  nope: 1", "unknown theme style"},
		{"negative", "max_fonts: -1", "must not be negative"},
		{"bad version", "version: one", "invalid config version"},
		{"future version", "version: v1.5.0", "not supported"},
		{"other major", "version: v2.0.0", "not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	o, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if o.MaxWidgets != DefaultMaxWidgets {
		t.Errorf("MaxWidgets = %d, want default", o.MaxWidgets)
	}
}

func TestLoadOptionalReadsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("max_widgets: 64\nversion: 1.0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if o.MaxWidgets != 64 {
		t.Errorf("MaxWidgets = %d, want 64", o.MaxWidgets)
	}
}
