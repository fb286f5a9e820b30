/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, injected on release builds via
// -ldflags "-X github.com/josephgoksu/gameforge/cmd.version=v0.3.0 ...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the application version string.
func GetVersion() string {
	return version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gameforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gameforge %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
