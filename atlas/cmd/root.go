// cmd/root.go
package cmd

import (
	"github.com/spf13/cobra"
)

// Global flags
var (
	Verbose  bool
	JsonLogs bool
	LogFile  string
)

// ExitCode is set by commands that map results to process exit codes:
// 0 feasible, 1 partial, 2 infeasible, 3 invalid input.
var ExitCode int

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Airlift load planner",
	Long: `
        _____
   __--'     '--__        _   _
  /  ___________  \   __ | |_| | __ _ ___
 |  |           |  | / _' | __| |/ _' / __|
 |  |  STRATUS  |  || (_| | |_| | (_| \__ \
 |  |___________|  | \__,_|\__|_|\__,_|___/
  \_______________/

Atlas is a CLI utility for planning military airlift loads. It works
with the Stratus load-planning library by David Kohl to normalize
movement manifests, build 463L pallets, place cargo, and allocate a
mixed fleet, reporting center-of-balance and placement constraints.
https://github.com/davidkohl/stratus
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&JsonLogs, "json-logs", false, "Log in JSON format")
	rootCmd.PersistentFlags().StringVar(&LogFile, "log-file", "", "Rotate logs into this file instead of stderr")

	// Version flag
	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
	rootCmd.SetVersionTemplate("Atlas v{{.Version}} - Stratus load-planner companion\n")
	rootCmd.Version = "0.1.0"
}
