package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/meyerstk/stormfetch/internal/output"
)

type BatchFile struct {
	Bucket   string   `yaml:"bucket,omitempty"`
	Output   string   `yaml:"output,omitempty"`
	Extract  *bool    `yaml:"extract,omitempty"`
	Locators []string `yaml:"locators"`
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [YAML_FILE]",
		Short: "Process a batch of locators from a YAML file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading YAML file: %v\n", err)
				os.Exit(1)
			}
			var batch BatchFile
			if err := yaml.Unmarshal(data, &batch); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing YAML file: %v\n", err)
				os.Exit(1)
			}
			if len(batch.Locators) == 0 {
				fmt.Fprintf(os.Stderr, "No locators found in the batch file\n")
				os.Exit(1)
			}
			extract := true
			if batch.Extract != nil {
				extract = *batch.Extract
			}
			outDir := batch.Output
			if outputDir != "" {
				outDir = outputDir
			}
			files, err := runDownload(batch.Locators, batch.Bucket, outDir, extract)
			if err != nil {
				output.PrintError(fmt.Sprintf("Batch failed: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Retrieved %d file(s)", len(files)))
		},
	}
	return cmd
}
