package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	"github.com/nfnt/resize"
)

/*
ImageWidths are the widths optimized images are produced at. Grid tiles
use 800 and the lightbox uses 1400.
*/
var ImageWidths = []uint{400, 800, 1400}

const (
	GridImageWidth     uint = 800
	LightboxImageWidth uint = 1400
)

type ImageServicer interface {
	Optimize(ctx context.Context, src string, width uint) ([]byte, error)
}

type ImageServiceConfig struct {
	Cache      ThumbnailCache
	Downloader DownloadServicer
	Quality    int
}

type ImageService struct {
	cache      ThumbnailCache
	downloader DownloadServicer
	quality    int
}

func NewImageService(config ImageServiceConfig) ImageService {
	if config.Quality <= 0 {
		config.Quality = 85
	}

	if config.Cache == nil {
		config.Cache = NewMemoryThumbnailCache()
	}

	return ImageService{
		cache:      config.Cache,
		downloader: config.Downloader,
		quality:    config.Quality,
	}
}

/*
Optimize returns a JPEG of src no wider than the snapped width. Images
narrower than the width are re-encoded but not enlarged.
*/
func (s ImageService) Optimize(ctx context.Context, src string, width uint) ([]byte, error) {
	var (
		err        error
		cached     []byte
		ok         bool
		downloaded DownloadedImage
		img        image.Image
		buf        bytes.Buffer
	)

	width = SnapImageWidth(width)
	key := ThumbnailKey(src, width)

	if cached, ok, err = s.cache.Get(key); err != nil {
		slog.Error("error reading thumbnail cache", "key", key, "error", err)
	} else if ok {
		return cached, nil
	}

	if downloaded, err = s.downloader.Fetch(ctx, src); err != nil {
		return nil, err
	}

	defer downloaded.Body.Close()

	if img, err = s.resizeReader(downloaded.Body, width); err != nil {
		return nil, err
	}

	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, fmt.Errorf("error encoding optimized image: %w", err)
	}

	if err = s.cache.Put(key, buf.Bytes()); err != nil {
		slog.Error("error caching optimized image", "key", key, "error", err)
	}

	return buf.Bytes(), nil
}

func (s ImageService) resizeReader(r io.Reader, width uint) (image.Image, error) {
	var (
		err error
		img image.Image
	)

	if img, _, err = image.Decode(r); err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	if uint(img.Bounds().Dx()) <= width {
		return img, nil
	}

	// A zero height keeps the aspect ratio
	return resize.Resize(width, 0, img, resize.Lanczos3), nil
}

// SnapImageWidth rounds width up to the nearest supported width.
func SnapImageWidth(width uint) uint {
	for _, w := range ImageWidths {
		if width <= w {
			return w
		}
	}

	return ImageWidths[len(ImageWidths)-1]
}

func ThumbnailKey(src string, width uint) string {
	sum := sha1.Sum([]byte(src))
	return fmt.Sprintf("%s-w%d.jpg", hex.EncodeToString(sum[:]), width)
}
