package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┬ ┬┌─┐┬┌┐┌┌┬┐
  ║║║├─┤└┬┘├┤ ││││ ││
  ╚╩╝┴ ┴ ┴ └  ┴┘└┘─┴┘
`

func main() {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "Declarative route matching and navigation sessions",
		Long: `Wayfind resolves paths against a declarative route manifest.

Routes are declared once in a manifest (YAML, JSON, TOML or HCL) and
compiled into a route tree. The CLI inspects the table, resolves paths
exactly the way the runtime resolver would, and serves the tree with a
live navigation session over HTTP and WebSocket.

  • Patterns: literals, :param, :param? and a trailing * wildcard
  • Deterministic precedence with full backtracking
  • Canonicalization of dot segments, duplicate slashes and escapes
  • History sessions with push, replace, back and forward
  • Session snapshots on disk or S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add commands
	rootCmd.AddCommand(
		initCmd(),
		routesCmd(),
		matchCmd(),
		hrefCmd(),
		checkCmd(),
		genCmd(),
		serveCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the wayfind ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
