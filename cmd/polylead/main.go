// polylead finds the leading term of a polynomial typed on the command line.
//
// Usage:
//
//	polylead analyze "3x^2y - (x+1)(x-1)"
//	polylead analyze --json "x/3 + y"
//	polylead validate "x + 3 y"
//	polylead normalize "(x+1)^2"
//	polylead tool tokenize "2x^3"
//	polylead interactive
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
