// actions-server CLI - serves JSON actions, redirects, static files and uploads over HTTP
package main

import (
	"os"

	"github.com/rzarajczyk/actions-server/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	return cli.Execute()
}
