package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meyerstk/stormfetch/internal/dataset"
	"github.com/meyerstk/stormfetch/internal/output"
)

func newTornetCmd() *cobra.Command {
	var full bool
	var years []int

	cmd := &cobra.Command{
		Use:   "tornet",
		Short: "Download the TorNet tornado dataset archives",
		Long: `Download TorNet yearly archives from Zenodo and extract them.

By default only the first yearly archive is fetched; use --full for the
entire dataset.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := dataset.TorNet()
			outDir := outputDir
			if outDir == "" {
				outDir = cfg.DefaultOutputDir
			}
			locators := cfg.Locators
			if !full {
				locators = locators[:1]
			}
			files, err := runDownload(locators, "", outDir, true)
			if err != nil {
				output.PrintError(fmt.Sprintf("Download failed: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Retrieved %d file(s) into %s", len(files), outDir))
		},
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Download the TorNet event catalog and summarize it",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := dataset.TorNet()
			outDir := outputDir
			if outDir == "" {
				outDir = cfg.DefaultOutputDir
			}
			files, err := runDownload([]string{cfg.CatalogURL}, "", outDir, true)
			if err != nil || len(files) == 0 {
				output.PrintError(fmt.Sprintf("Catalog download failed: %v", err))
				os.Exit(1)
			}
			catalog, err := dataset.ReadCatalog(files[0])
			if err != nil {
				output.PrintError(fmt.Sprintf("Catalog unreadable: %v", err))
				os.Exit(1)
			}
			filtered, err := catalog.FilterYears(years)
			if err != nil {
				output.PrintError(fmt.Sprintf("Catalog filtering failed: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Catalog at %s: %d event(s)", files[0], len(filtered.Rows)))
		},
	}
	catalogCmd.Flags().IntSliceVar(&years, "year", nil, "Restrict the catalog to these years (repeatable)")

	cmd.Flags().BoolVar(&full, "full", false, "Download every yearly archive instead of just the first")
	cmd.AddCommand(catalogCmd)
	return cmd
}
