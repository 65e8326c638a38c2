package cmd

import (
	"ai-multi/internal/container"
	"ai-multi/internal/webui"

	"github.com/spf13/cobra"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser UI",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := container.Build()
		if err != nil {
			die("wiring failed: %v", err)
		}
		if err := c.Invoke(func(server *webui.Server) error {
			return server.Start()
		}); err != nil {
			die("%v", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(ServeCmd)
}
