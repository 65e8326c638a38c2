package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the root command of the ai-multi CLI
var RootCmd = &cobra.Command{
	Use:   "ai-multi",
	Short: "A client for the multi-model automation webhook.",
	Long: `ai-multi sends a text prompt or an uploaded media file to a configured
automation webhook and renders the per-model results it answers with.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func die(format string, v ...interface{}) {
	fmt.Fprintln(os.Stderr, fmt.Sprintf(format, v...))
	os.Exit(1)
}
