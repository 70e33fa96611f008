package main

import (
	"context"
	"os"

	"github.com/namelens/gh-whenreset/internal/cmd"
)

// Version information set via ldflags during build
// Example: go build -ldflags="-X main.version=1.0.0 -X main.commit=abc123 -X main.buildDate=2025-10-28"
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)

	os.Exit(cmd.Run(context.Background(), os.Args[1:], cmd.DefaultEnvironment()))
}
