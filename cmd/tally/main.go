// Command tally records numeric metrics in an outline graph and charts them
// in the terminal.
package main

import (
	"os"

	"github.com/rileyhilliard/tally/internal/cli"
)

// Filled by the release build:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01" ./cmd/tally
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	os.Exit(cli.Execute())
}
