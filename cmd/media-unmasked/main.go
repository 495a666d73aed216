// Command media-unmasked analyzes news articles for bias, manipulation and
// evidence-based reporting, either in a terminal UI or as a one-shot report.
package main

import (
	"os"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	setVersion(version)
	if err := execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
