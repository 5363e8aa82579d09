package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meyerstk/stormfetch/internal/fetch"
	"github.com/meyerstk/stormfetch/internal/output"
	"github.com/meyerstk/stormfetch/internal/utils"
)

var (
	outputDir string
	debug     bool
)

var StormfetchVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "stormfetch",
	Short:   "Stormfetch moves bulk meteorological ML datasets",
	Version: StormfetchVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (working directory if not provided)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newTornetCmd())
	rootCmd.AddCommand(newGoesCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newCleanCmd())
}

// runDownload drives one engine batch with terminal progress wired in.
func runDownload(locators []string, bucket, outDir string, extract bool) ([]string, error) {
	engine := fetch.NewEngine(utils.GetLogger("fetch"))
	return engine.Download(context.Background(), locators, fetch.Options{
		OutputDir:           outDir,
		Bucket:              bucket,
		Extract:             extract,
		ProgressFunc:        output.FileProgress("Downloading"),
		ExtractProgressFunc: output.FileProgress("Extracting"),
	})
}
