package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meyerstk/stormfetch/internal/output"
)

func newGetCmd() *cobra.Command {
	var bucket string
	var noExtract bool

	cmd := &cobra.Command{
		Use:   "get [LOCATOR...]",
		Short: "Download locators (full URLs, or object keys with --bucket)",
		Long: `Download one or more locators with the external worker.

Examples:
  stormfetch get https://example.com/archives/data.tar.gz
  stormfetch get goes.csv --bucket TornadoPrediction-GOES
  stormfetch get https://example.com/raw.zip --no-extract -o ./data`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			files, err := runDownload(args, bucket, outputDir, !noExtract)
			if err != nil {
				output.PrintError(fmt.Sprintf("Download failed: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Retrieved %d file(s)", len(files)))
			for _, file := range files {
				output.PrintInfo("  " + file)
			}
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Resolve locators as keys in this bucket via the proxy mirror")
	cmd.Flags().BoolVar(&noExtract, "no-extract", false, "Keep downloaded archives as-is")
	return cmd
}
