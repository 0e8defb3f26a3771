// Skintint - dominant skin-tone extraction
//
// Skintint isolates skin-coloured pixels in a photograph, clusters their
// colours and maps the dominant colour to a named skin tone.
package main

import (
	"os"

	"github.com/skintint/skintint/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
