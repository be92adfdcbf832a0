// Package main implements the scry-anki command, which turns a list of
// vocabulary phrases into cloze flashcards in a local Anki collection.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
