package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/facet/pkg/window"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tree",
		Short: "Print the window tree of a layout",
		Long: `Load a layout file into the default context and print each window
with its type and pixel rectangle.

Schemes listed in facet.yaml are loaded first, then any given with
--scheme. The display defaults to 800x600.`,
		Usage: "facet tree <layout> [--scheme FILE]... [--size WxH] [--dir DIR]",
		Run:   runTree,
	})
}

func runTree(args []string) error {
	var flags systemFlags
	rest, err := flags.parse(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("tree requires exactly one layout file")
	}

	sys, err := flags.newSystem(false)
	if err != nil {
		return err
	}
	defer sys.Close()

	root, err := sys.Windows().LoadLayoutFile(absPath(rest[0]), "")
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}
	if err := sys.DefaultContext().SetRootWindow(root); err != nil {
		return err
	}
	printTree(root, 0)
	return nil
}

func printTree(w *window.Window, depth int) {
	line := fmt.Sprintf("%s%s (%s) %s", strings.Repeat("  ", depth), w.Name(), w.Type(), w.UnclippedOuterRect())
	if text := w.Text(); text != "" {
		line += fmt.Sprintf(" %q", text)
	}
	fmt.Fprintln(stdout, line)
	for i := 0; i < w.ChildCount(); i++ {
		printTree(w.ChildAt(i), depth+1)
	}
}
