package cmd

import (
	"fmt"

	"ai-multi/internal/models"

	"github.com/spf13/cobra"
)

var ModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the built-in model catalog",
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range models.AvailableModels() {
			fmt.Printf("%-14s %s — %s\n", m.ID, m.Title, m.Desc)
		}
	},
}

func init() {
	RootCmd.AddCommand(ModelsCmd)
}
