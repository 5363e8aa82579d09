package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meyerstk/stormfetch/internal/output"
	"github.com/meyerstk/stormfetch/internal/storage"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [FILE...]",
		Short: "Delete local artifacts (best-effort)",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			storage.Delete(args)
			output.PrintSuccess(fmt.Sprintf("Cleanup attempted for %d file(s)", len(args)))
		},
	}
	return cmd
}
