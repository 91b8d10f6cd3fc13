package cmd

import (
	"errors"
	"fmt"
)

func init() {
	RegisterCommand(&Command{
		Name:  "lint",
		Short: "Check that a scheme loads and its window types create",
		Long: `Load a scheme file with every resource it references, then create
one window of each type it maps. Problems are listed and make the
command fail.

Configuration from facet.yaml in --dir supplies resource groups and
logging; schemes listed there are not loaded.`,
		Usage: "facet lint <scheme> [--dir DIR]",
		Run:   runLint,
	})
}

func runLint(args []string) error {
	var flags systemFlags
	rest, err := flags.parse(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("lint requires exactly one scheme file")
	}
	flags.schemes = nil

	sys, err := flags.newSystem(true)
	if err != nil {
		return err
	}
	defer sys.Close()

	sc, err := sys.LoadScheme(absPath(rest[0]), "")
	if err != nil {
		return fmt.Errorf("loading scheme: %w", err)
	}
	fmt.Fprintf(stdout, "scheme %s: %d imagesets, %d fonts, %d look files, %d mappings, %d aliases\n",
		sc.Name, len(sc.Imagesets), len(sc.Fonts), len(sc.LookNFeels), len(sc.Mappings), len(sc.Aliases))

	var problems []error
	for i, fm := range sc.Mappings {
		if !sys.Looks().IsDefined(fm.Look) {
			problems = append(problems, fmt.Errorf("%s: look %q is not defined", fm.Type, fm.Look))
			continue
		}
		w, err := sys.Windows().CreateWindow(fm.Type, fmt.Sprintf("lint%d", i))
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", fm.Type, err))
			continue
		}
		sys.Windows().DestroyWindow(w)
		fmt.Fprintf(stdout, "  ok  %-24s %s / %s\n", fm.Type, fm.Renderer, fm.Look)
	}
	for _, p := range problems {
		fmt.Fprintf(stdout, "  bad %v\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d of %d mappings failed: %w", len(problems), len(sc.Mappings), errors.Join(problems...))
	}
	return nil
}
