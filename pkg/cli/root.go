package cli

import (
	"github.com/spf13/cobra"

	"github.com/rzarajczyk/actions-server/pkg/cli/internal/output"
)

var (
	// jsonOutput is bound to the persistent --json flag.
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "actions-server",
	Short: "actions-server is a small multi-threaded HTTP server for JSON actions",
	Long: `actions-server serves an ordered list of actions over HTTP: JSON endpoints,
redirects, static files from a directory and file uploads.

Actions are declared in a YAML or JSON configuration file, or added with flags.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute runs the root command with the process arguments and returns the
// process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
