// Go-RawEdit applies photographic adjustments (exposure, tone, colour,
// clarity, sharpening) to decoded images and reports their histograms.
package main

import (
	"os"

	"github.com/anas-shakeel/go-rawedit/internal/cli"
)

func main() {
	// cobra has already printed the error
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
