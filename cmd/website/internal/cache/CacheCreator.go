package cache

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/classalbum/pkg/services"
	"github.com/alitto/pond/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type CacheCreator interface {
	CreateCache() CacheResult
}

type CacheResult struct {
	Warmed int64
	Failed int64
	Pruned int
}

type CacheCreatorConfig struct {
	AwsBucket       string
	AwsRegion       string
	ImageService    services.ImageServicer
	MaxCacheWorkers int
	PhotoService    services.PhotoServicer
	S3Client        s3.S3Client
	ShutdownCtx     context.Context
	ThumbnailFolder string
}

/*
CacheCreatorService warms the optimized image cache for every photo in
the catalog at grid width. When thumbnails live in S3 it also makes sure
the bucket exists and removes thumbnails nothing in the catalog uses.
*/
type CacheCreatorService struct {
	awsBucket       string
	awsRegion       string
	imageService    services.ImageServicer
	maxCacheWorkers int
	photoService    services.PhotoServicer
	s3Client        s3.S3Client
	shutdownCtx     context.Context
	thumbnailFolder string
}

func NewCacheCreatorService(config CacheCreatorConfig) CacheCreatorService {
	if config.MaxCacheWorkers <= 0 {
		config.MaxCacheWorkers = 4
	}

	if config.ShutdownCtx == nil {
		config.ShutdownCtx = context.Background()
	}

	return CacheCreatorService{
		awsBucket:       config.AwsBucket,
		awsRegion:       config.AwsRegion,
		imageService:    config.ImageService,
		maxCacheWorkers: config.MaxCacheWorkers,
		photoService:    config.PhotoService,
		s3Client:        config.S3Client,
		shutdownCtx:     config.ShutdownCtx,
		thumbnailFolder: config.ThumbnailFolder,
	}
}

func (c CacheCreatorService) CreateCache() CacheResult {
	var (
		err    error
		warmed atomic.Int64
		failed atomic.Int64
		result CacheResult
	)

	sources := c.uniqueSources()
	slog.Info("starting thumbnail cache creation...", "numImages", len(sources))

	if c.s3Client != nil {
		if err = c.ensureBucketExists(c.awsBucket); err != nil {
			slog.Error("error ensuring bucket exists. skipping cache creation", "bucket", c.awsBucket, "error", err)
			return result
		}

		if result.Pruned, err = c.pruneOrphans(sources); err != nil {
			slog.Error("error pruning orphaned thumbnails", "bucket", c.awsBucket, "error", err)
		}
	}

	pool := pond.NewPool(c.maxCacheWorkers, pond.WithContext(c.shutdownCtx))

	for _, src := range sources {
		pool.Submit(func() {
			if _, err := c.imageService.Optimize(c.shutdownCtx, src, services.GridImageWidth); err != nil {
				slog.Error("error creating thumbnail", "src", src, "error", err)
				failed.Add(1)
				return
			}

			warmed.Add(1)
		})
	}

	_ = pool.Stop().Wait()

	result.Warmed = warmed.Load()
	result.Failed = failed.Load()
	return result
}

func (c CacheCreatorService) uniqueSources() []string {
	result := []string{}

	for _, photo := range c.photoService.GetAll() {
		if !slices.IsInSlice(photo.Src, result) {
			result = append(result, photo.Src)
		}
	}

	return result
}

func (c CacheCreatorService) ensureBucketExists(bucketName string) error {
	var (
		err    error
		exists bool
	)

	exists, err = c.s3Client.BucketExists(bucketName)

	if err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", bucketName, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", bucketName)

	err = c.s3Client.CreateBucket(
		bucketName,
		createbucketoptions.WithRegion(c.awsRegion),
	)

	if err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", bucketName, err)
	}

	return nil
}

/*
pruneOrphans deletes cached thumbnails whose key does not belong to any
photo at any supported width.
*/
func (c CacheCreatorService) pruneOrphans(sources []string) (int, error) {
	var (
		err      error
		response s3.ListResponse
	)

	expected := []string{}

	for _, src := range sources {
		for _, width := range services.ImageWidths {
			expected = append(expected, services.ThumbnailKey(src, width))
		}
	}

	response, err = c.s3Client.List(
		c.awsBucket,
		c.thumbnailFolder,
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			return !slices.IsInSlice(filepath.Base(aws.ToString(obj.Key)), expected)
		}),
	)

	if err != nil {
		return 0, fmt.Errorf("error listing cached thumbnails: %w", err)
	}

	if len(response.Objects) == 0 {
		return 0, nil
	}

	keys := slices.Map(response.Objects, func(input s3.Object, index int) string {
		return input.Key
	})

	if _, err = c.s3Client.Delete(c.awsBucket, keys); err != nil {
		return 0, fmt.Errorf("error deleting orphaned thumbnails: %w", err)
	}

	slog.Info("removed orphaned thumbnails", "count", len(keys))
	return len(keys), nil
}
