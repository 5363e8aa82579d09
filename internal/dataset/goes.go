package dataset

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// NOAA's public GOES buckets, keyed by the region of the U.S. each
// satellite covers.
var GOESBuckets = map[string]string{
	"east": "noaa-goes16",
	"west": "noaa-goes17",
}

// GOESSensor is the ABI product scenes are listed from.
const GOESSensor = "ABI-L2-MCMIPC"

// GOESYears are the years the catalog covers by default.
var GOESYears = []int{2017, 2018, 2019, 2020, 2021, 2022}

// Scene is one satellite capture listed from NOAA's buckets.
type Scene struct {
	Filename  string
	Satellite string
	Region    string
	Year      int
	JulianDay int
	Hour      int
	Time      time.Time
}

// Scene filenames embed the start-of-scan time as _sYYYYDDDHHMMSS.
var sceneTimeRegex = regexp.MustCompile(`_s(\d{4})(\d{3})(\d{2})(\d{2})(\d{2})`)

// SceneURL returns the public HTTPS address of a scene object, which
// the download engine can fetch without credentials.
func SceneURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

// parseSceneTime extracts the scan timestamp and julian day from a
// scene object key.
func parseSceneTime(key string) (time.Time, int, bool) {
	m := sceneTimeRegex.FindStringSubmatch(key)
	if m == nil {
		return time.Time{}, 0, false
	}
	scanTime, err := time.ParseInLocation("2006-002 15:04:05",
		fmt.Sprintf("%s-%s %s:%s:%s", m[1], m[2], m[3], m[4], m[5]), time.UTC)
	if err != nil {
		return time.Time{}, 0, false
	}
	julianDay, _ := strconv.Atoi(m[2])
	return scanTime, julianDay, true
}

// BuildGOESCatalog lists scene objects from NOAA's buckets for the
// given years (all catalog years when empty) and parses their scan
// times. Only filename-level metadata is collected.
func BuildGOESCatalog(ctx context.Context, years []int) ([]Scene, error) {
	if len(years) == 0 {
		years = GOESYears
	}
	client, err := newAnonymousS3Client(ctx)
	if err != nil {
		return nil, err
	}

	var scenes []Scene
	for region, bucket := range GOESBuckets {
		log.Info().Str("op", "dataset/goes").Msgf("Scanning bucket %s (%s)", bucket, region)
		for _, year := range years {
			keys, err := listSceneKeys(ctx, client, bucket, year)
			if err != nil {
				return nil, err
			}
			log.Debug().Str("op", "dataset/goes").Msgf("Found %d object(s) for year %d", len(keys), year)
			for _, key := range keys {
				scanTime, julianDay, ok := parseSceneTime(key)
				if !ok {
					continue
				}
				scenes = append(scenes, Scene{
					Filename:  key,
					Satellite: bucket,
					Region:    region,
					Year:      scanTime.Year(),
					JulianDay: julianDay,
					Hour:      scanTime.Hour(),
					Time:      scanTime,
				})
			}
		}
	}
	log.Info().Str("op", "dataset/goes").Msgf("Built catalog with %d scene(s)", len(scenes))
	return scenes, nil
}

// NOAA's buckets are public, so the client signs nothing.
func newAnonymousS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func listSceneKeys(ctx context.Context, client *s3.Client, bucket string, year int) ([]string, error) {
	prefix := fmt.Sprintf("%s/%d/", GOESSensor, year)
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %v", err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}
