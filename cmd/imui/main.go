// Command imui drives the immediate-mode GUI engine headlessly: it renders
// a demo scene to PNG, dumps the recorded draw commands and prints the
// resolved engine options.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/imui/cmd/imui/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
