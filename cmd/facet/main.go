// Command facet inspects facet skins and layouts without a display.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/facet/cmd/facet/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
