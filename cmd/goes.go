package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meyerstk/stormfetch/internal/dataset"
	"github.com/meyerstk/stormfetch/internal/output"
)

func newGoesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goes",
		Short: "Work with the GOES satellite imagery companion dataset",
	}
	cmd.AddCommand(newGoesCatalogCmd())
	cmd.AddCommand(newGoesFetchCmd())
	return cmd
}

func newGoesCatalogCmd() *cobra.Command {
	var raw bool
	var years []int

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Load the GOES scene catalog",
		Long: `Load the pre-built GOES catalog CSV, or with --raw build a simplified
catalog by listing NOAA's public buckets directly.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := dataset.GOES()
			if raw {
				scenes, err := dataset.BuildGOESCatalog(context.Background(), years)
				if err != nil {
					output.PrintError(fmt.Sprintf("Catalog build failed: %v", err))
					os.Exit(1)
				}
				output.PrintSuccess(fmt.Sprintf("Built catalog with %d scene(s)", len(scenes)))
				return
			}
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
			output.PrintSuccess(fmt.Sprintf("Catalog at %s: %d scene(s)", files[0], len(filtered.Rows)))
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Build the catalog from NOAA's S3 buckets instead of the pre-built CSV")
	cmd.Flags().IntSliceVar(&years, "year", nil, "Restrict the catalog to these years (repeatable)")
	return cmd
}

func newGoesFetchCmd() *cobra.Command {
	var satellite string

	cmd := &cobra.Command{
		Use:   "fetch [NC_FILENAME...]",
		Short: "Download NetCDF scene files from a NOAA GOES bucket",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			bucket, ok := dataset.GOESBuckets[satellite]
			if !ok {
				// Accept a raw bucket name too (e.g. noaa-goes16).
				bucket = satellite
			}
			locators := make([]string, 0, len(args))
			for _, key := range args {
				locators = append(locators, dataset.SceneURL(bucket, key))
			}
			cfg := dataset.GOES()
			outDir := outputDir
			if outDir == "" {
				outDir = cfg.DefaultOutputDir
			}
			// NetCDF scenes are already final files, nothing to extract.
			files, err := runDownload(locators, "", outDir, false)
			if err != nil {
				output.PrintError(fmt.Sprintf("Download failed: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Retrieved %d scene(s) into %s", len(files), outDir))
		},
	}
	cmd.Flags().StringVar(&satellite, "satellite", "east", "Satellite region (east, west) or an explicit bucket name")
	return cmd
}
