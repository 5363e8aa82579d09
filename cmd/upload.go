package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meyerstk/stormfetch/internal/output"
	"github.com/meyerstk/stormfetch/internal/storage"
)

func newUploadCmd() *cobra.Command {
	var bucket string
	var keyID string
	var appKey string
	var endpoint string

	cmd := &cobra.Command{
		Use:   "upload [FILE...]",
		Short: "Upload curated artifacts to a managed bucket",
		Long: `Upload local files to a Backblaze B2 bucket via its S3-compatible
endpoint. Credentials come from --key-id/--app-key or the B2_KEY_ID and
B2_APP_KEY environment variables.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if keyID == "" {
				keyID = os.Getenv("B2_KEY_ID")
			}
			if appKey == "" {
				appKey = os.Getenv("B2_APP_KEY")
			}
			if keyID == "" || appKey == "" {
				output.PrintError("Missing credentials: set --key-id/--app-key or B2_KEY_ID/B2_APP_KEY")
				os.Exit(1)
			}
			ctx := context.Background()
			client, err := storage.NewClient(ctx, endpoint, storage.Credentials{KeyID: keyID, AppKey: appKey})
			if err != nil {
				output.PrintError(fmt.Sprintf("Storage client setup failed: %v", err))
				os.Exit(1)
			}
			if err := client.Upload(ctx, args, bucket); err != nil {
				output.PrintError(fmt.Sprintf("Upload failed: %v", err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Uploaded %d file(s) to %s", len(args), bucket))
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket name")
	cmd.Flags().StringVar(&keyID, "key-id", "", "Application key ID")
	cmd.Flags().StringVar(&appKey, "app-key", "", "Application key")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3-compatible endpoint override")
	cmd.MarkFlagRequired("bucket")
	return cmd
}
