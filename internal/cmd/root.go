// Package cmd holds the shopdesk command tree: the console API server and
// the staff commands that talk to the shop backend directly.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "shopdesk",
	Short: "Staff console for the shop backend",
	Long: `shopdesk manages appointments, projects, the catalogue and the site
information of the shop backend.

Run "shopdesk serve" to start the console API, or use the subcommands to
work on appointments and projects from the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./shopdesk.yaml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
