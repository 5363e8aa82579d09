package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/meyerstk/stormfetch/internal/utils"
)

// Backblaze B2 is driven through its S3-compatible endpoint.
const (
	DefaultEndpoint = "https://s3.us-west-004.backblazeb2.com"
	defaultRegion   = "us-west-004"
)

// Credentials holds a B2 application key pair.
type Credentials struct {
	KeyID  string
	AppKey string
}

// Client uploads curated artifacts to a managed bucket.
type Client struct {
	s3       *s3.Client
	uploader *manager.Uploader
}

func NewClient(ctx context.Context, endpoint string, creds Credentials) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(defaultRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(creds.KeyID, creds.AppKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading storage config: %v", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &Client{
		s3:       client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Upload stores each file in the bucket under its base filename. Any
// failure, including the initial bucket resolution, aborts the whole
// call; there is no partial-success bookkeeping here.
func (c *Client) Upload(ctx context.Context, files []string, bucket string) error {
	if _, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return fmt.Errorf("error resolving bucket %s: %v", bucket, err)
	}
	log.Info().Str("op", "storage/upload").Msgf("Authorized against bucket %s", bucket)

	for _, file := range files {
		reader, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("error opening %s: %v", file, err)
		}
		if info, err := reader.Stat(); err == nil {
			log.Info().Str("op", "storage/upload").Msgf("Uploading %s (%s) to bucket %s", file, utils.FormatBytes(uint64(info.Size())), bucket)
		}
		_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(filepath.Base(file)),
			Body:   reader,
		})
		reader.Close()
		if err != nil {
			return fmt.Errorf("error uploading %s: %v", file, err)
		}
	}
	log.Info().Str("op", "storage/upload").Msgf("Uploaded %d file(s)", len(files))
	return nil
}

// Delete removes local files best-effort; failures are logged as
// warnings and never abort the batch.
func Delete(files []string) {
	log.Info().Str("op", "storage/delete").Msgf("Deleting %d local file(s)", len(files))
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			log.Warn().Str("op", "storage/delete").Err(err).Msgf("Failed to delete %s", file)
			continue
		}
		log.Debug().Str("op", "storage/delete").Msgf("Deleted %s", file)
	}
}
