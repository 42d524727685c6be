package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
)

var (
	ErrDownloadFailed = fmt.Errorf("download failed")
)

type DownloadServicer interface {
	Fetch(ctx context.Context, src string) (DownloadedImage, error)
}

type DownloadedImage struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type DownloadServiceConfig struct {
	HostPolicy ImageHostPolicy
	HttpClient httphelpers.HttpClient
	Timeout    time.Duration
}

type DownloadService struct {
	hostPolicy ImageHostPolicy
	httpClient httphelpers.HttpClient
}

func NewDownloadService(config DownloadServiceConfig) DownloadService {
	client := config.HttpClient

	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	return DownloadService{
		hostPolicy: config.HostPolicy,
		httpClient: client,
	}
}

/*
Fetch retrieves the remote image bytes. The caller owns Body. No retries
are made.
*/
func (s DownloadService) Fetch(ctx context.Context, src string) (DownloadedImage, error) {
	var (
		err      error
		u        *url.URL
		req      *http.Request
		response *http.Response
	)

	if u, err = s.hostPolicy.Check(src); err != nil {
		return DownloadedImage{}, err
	}

	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil); err != nil {
		return DownloadedImage{}, fmt.Errorf("error creating download request for '%s': %w", src, err)
	}

	if response, err = s.httpClient.Do(req); err != nil {
		return DownloadedImage{}, fmt.Errorf("%w: error downloading image from '%s': %w", ErrDownloadFailed, src, err)
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return DownloadedImage{}, fmt.Errorf("%w: error downloading image from '%s', status: %s", ErrDownloadFailed, src, response.Status)
	}

	contentType := response.Header.Get("Content-Type")

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return DownloadedImage{
		Body:        response.Body,
		ContentType: contentType,
		Size:        response.ContentLength,
	}, nil
}

/*
DownloadFileName turns a photo title into the file name offered to the
browser. Empty titles fall back to "photo".
*/
func DownloadFileName(title string) string {
	name := strings.TrimSpace(title)

	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '-'
		}

		if r < 32 {
			return -1
		}

		return r
	}, name)

	if name == "" {
		name = "photo"
	}

	return name + ".jpg"
}
