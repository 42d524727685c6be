package services

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/adampresley/adamgokit/s3"
)

type ThumbnailCache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, data []byte) error
}

type MemoryThumbnailCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryThumbnailCache() *MemoryThumbnailCache {
	return &MemoryThumbnailCache{
		entries: map[string][]byte{},
	}
}

func (c *MemoryThumbnailCache) Get(key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *MemoryThumbnailCache) Put(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = data
	return nil
}

type S3ThumbnailCacheConfig struct {
	Bucket   string
	Folder   string
	S3Client s3.S3Client
}

/*
S3ThumbnailCache stores optimized images in an S3 compatible bucket under
{Folder}/{key}.
*/
type S3ThumbnailCache struct {
	bucket   string
	folder   string
	s3Client s3.S3Client
}

func NewS3ThumbnailCache(config S3ThumbnailCacheConfig) S3ThumbnailCache {
	return S3ThumbnailCache{
		bucket:   config.Bucket,
		folder:   config.Folder,
		s3Client: config.S3Client,
	}
}

func (c S3ThumbnailCache) Get(key string) ([]byte, bool, error) {
	var (
		err    error
		stat   *s3.ObjectMetadata
		object s3.GetObjectResponse
		data   []byte
	)

	objectKey := c.objectKey(key)

	if stat, err = c.s3Client.StatObject(c.bucket, objectKey); err != nil {
		return nil, false, fmt.Errorf("error retrieving metadata for cached thumbnail '%s': %w", objectKey, err)
	}

	if stat == nil {
		return nil, false, nil
	}

	if object, err = c.s3Client.Get(c.bucket, objectKey); err != nil {
		return nil, false, fmt.Errorf("error retrieving cached thumbnail '%s': %w", objectKey, err)
	}

	defer object.Body.Close()

	if data, err = io.ReadAll(object.Body); err != nil {
		return nil, false, fmt.Errorf("error reading cached thumbnail '%s': %w", objectKey, err)
	}

	return data, true, nil
}

func (c S3ThumbnailCache) Put(key string, data []byte) error {
	objectKey := c.objectKey(key)

	if _, err := c.s3Client.Put(c.bucket, objectKey, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("error uploading thumbnail '%s' to S3: %w", objectKey, err)
	}

	return nil
}

func (c S3ThumbnailCache) objectKey(key string) string {
	return filepath.Join(c.folder, key)
}
