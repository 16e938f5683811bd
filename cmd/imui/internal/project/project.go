// Package project locates the enclosing Go module and its imui.yaml.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/imui/pkg/config"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// ErrNoModule is returned by FindProjectRoot outside a Go module.
var ErrNoModule = errors.New("not in a Go module (no go.mod found)")

// Resolved contains resolved project values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	// ConfigPath is the file the options came from, or empty for
	// defaults.
	ConfigPath string
	Options    config.Options
}

// FindProjectRoot walks up from dir to find go.mod.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModule
		}
		dir = parent
	}
}

// Resolve loads options for the project containing dir. An explicit
// configPath wins over the project's imui.yaml. Outside a module dir
// itself is used as the root.
func Resolve(dir, configPath string) (*Resolved, error) {
	r := &Resolved{Root: dir}
	if root, err := FindProjectRoot(dir); err == nil {
		r.Root = root
		if r.ModulePath, err = modulePath(root); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, ErrNoModule) {
		return nil, err
	}
	r.AppName = defaultAppName(r.ModulePath, r.Root)

	if configPath == "" {
		candidate := filepath.Join(r.Root, config.FileName)
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		}
	}
	if configPath == "" {
		r.Options = config.Defaults()
		return r, nil
	}
	opts, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	r.ConfigPath, r.Options = configPath, opts
	return r, nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "imui"
	}
	return base
}
