// Command spellbound prints the misspelled words of its arguments, or of
// standard input when no arguments are given.
//
//	$ spellbound "I'm happy that this sentense has no errors."
//	ERROR: sentense
package main

import (
	stderrors "errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !stderrors.Is(err, errMisspelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
