package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/facet/pkg/config"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/gui"
)

// systemFlags are the flags shared by commands that build a System.
type systemFlags struct {
	dir     string
	schemes []string
	size    graphics.Size
}

// parse consumes the shared flags and returns the remaining arguments.
func (f *systemFlags) parse(args []string) ([]string, error) {
	f.dir = "."
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, inline := strings.Cut(arg, "=")
		switch name {
		case "--dir", "--scheme", "--size":
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag %s", arg)
			}
			rest = append(rest, arg)
			continue
		}
		if !inline {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", name)
			}
			i++
			value = args[i]
		}
		switch name {
		case "--dir":
			f.dir = value
		case "--scheme":
			f.schemes = append(f.schemes, value)
		case "--size":
			size, err := parseSize(value)
			if err != nil {
				return nil, err
			}
			f.size = size
		}
	}
	return rest, nil
}

// parseSize parses a "WIDTHxHEIGHT" display size.
func parseSize(s string) (graphics.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return graphics.Size{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(w, 32)
	if err != nil || width <= 0 {
		return graphics.Size{}, fmt.Errorf("invalid width in %q", s)
	}
	height, err := strconv.ParseFloat(h, 32)
	if err != nil || height <= 0 {
		return graphics.Size{}, fmt.Errorf("invalid height in %q", s)
	}
	return graphics.Size{Width: float32(width), Height: float32(height)}, nil
}

// newSystem resolves the configuration in f.dir and builds a headless
// System. Schemes named by the configuration are loaded unless skipSchemes
// is set; schemes from --scheme are loaded after them.
func (f *systemFlags) newSystem(skipSchemes bool) (*gui.System, error) {
	dir, err := filepath.Abs(f.dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if skipSchemes {
		cfg.Schemes = nil
	}
	cfg.Watch = false
	sys, err := gui.NewFromConfig(cfg, gui.Options{DisplaySize: f.size})
	if err != nil {
		return nil, err
	}
	for _, file := range f.schemes {
		if _, err := sys.LoadScheme(absPath(file), ""); err != nil {
			_ = sys.Close()
			return nil, err
		}
	}
	return sys, nil
}

func absPath(file string) string {
	if abs, err := filepath.Abs(file); err == nil {
		return abs
	}
	return file
}
