package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ai-multi/internal/container"
	"ai-multi/internal/models"
	"ai-multi/internal/runner"

	"github.com/spf13/cobra"
)

var (
	runInputType string
	runPrompt    string
	runModels    []string
	runFile      string
	runJSON      bool
)

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Send one request to the webhook and print the results",
	Run: func(cmd *cobra.Command, args []string) {
		inputType, err := models.ParseInputType(runInputType)
		if err != nil {
			die("%v", err)
		}

		in := models.Input{
			Type:   inputType,
			Prompt: runPrompt,
			Models: runModels,
		}
		if runFile != "" {
			data, err := os.ReadFile(runFile)
			if err != nil {
				die("cannot read %s: %v", runFile, err)
			}
			in.File = &models.FileUpload{
				Name: filepath.Base(runFile),
				Data: data,
			}
		}

		c, err := container.Build()
		if err != nil {
			die("wiring failed: %v", err)
		}
		if err := c.Invoke(func(r *runner.Runner) error {
			result, err := r.Run(context.Background(), in)
			if err != nil {
				return err
			}
			return printResult(result)
		}); err != nil {
			die("%v", err)
		}
	},
}

func init() {
	RunCmd.Flags().StringVarP(&runInputType, "type", "t", "text", "Input type: text, image or audio")
	RunCmd.Flags().StringVarP(&runPrompt, "prompt", "p", "", "Prompt text")
	RunCmd.Flags().StringArrayVarP(&runModels, "model", "m", nil, "Model to query (repeatable)")
	RunCmd.Flags().StringVarP(&runFile, "file", "f", "", "File to upload for image/audio runs")
	RunCmd.Flags().BoolVar(&runJSON, "json", false, "Print the records as JSON")
	RootCmd.AddCommand(RunCmd)
}

func printResult(result *models.RunResult) error {
	if runJSON {
		out, err := json.MarshalIndent(result.Records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Success — %.2fs (run %s)\n\n", result.Elapsed.Seconds(), result.RunID)
	for _, rec := range result.Records {
		fmt.Printf("== %s (latency: %g ms)\n%s\n\n", rec.Model, rec.Latency, rec.Response)
	}
	if len(result.Records) == 0 {
		fmt.Println("(no results)")
	}
	return nil
}
