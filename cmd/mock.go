package cmd

import (
	"fmt"

	"ai-multi/internal/mockhook"

	"github.com/spf13/cobra"
)

var (
	mockShape string
	mockPort  int
)

var MockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Start a local webhook simulator",
	Long: `Start a local stand-in for the automation webhook. It accepts every
request encoding the real endpoint sees and answers fake results in a
configurable shape, which is handy for developing against normalization.`,
	Run: func(cmd *cobra.Command, args []string) {
		shape, err := mockhook.ParseShape(mockShape)
		if err != nil {
			die("%v", err)
		}
		if err := mockhook.New(shape).Run(fmt.Sprintf(":%d", mockPort)); err != nil {
			die("mock webhook failed: %v", err)
		}
	},
}

func init() {
	MockCmd.Flags().StringVar(&mockShape, "shape", "map", "Response shape: map, envelope, list, scalar or raw")
	MockCmd.Flags().IntVar(&mockPort, "port", 8090, "Listen port")
	RootCmd.AddCommand(MockCmd)
}
