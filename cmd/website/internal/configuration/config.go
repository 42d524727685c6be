package configuration

import (
	"time"

	"github.com/adampresley/classalbum/pkg/services"
	"github.com/adampresley/configinator"
)

type Config struct {
	AlbumSubtitle          string `flag:"albumsubtitle" env:"ALBUM_SUBTITLE" default:"National College Example - Yearbook of memories" description:"Subtitle shown under the hero banner title"`
	AlbumTitle             string `flag:"albumtitle" env:"ALBUM_TITLE" default:"Class XII C - Class of 2025" description:"Title shown on the hero banner"`
	AllowedImageHosts      string `flag:"imagehosts" env:"ALLOWED_IMAGE_HOSTS" default:"images.unsplash.com,source.unsplash.com,f000.backblazeb2.com" description:"Comma separated list of hosts images may be loaded from"`
	AppMode                string `flag:"mode" env:"APP_MODE" default:"production" description:"Application mode. 'development' disables the service worker"`
	AwsEndpointUrl         string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion              string `flag:"awsregion" env:"AWS_REGION" default:"us-central-1" description:"AWS region"`
	AwsAccessKeyId         string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey     string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket              string `flag:"awsbucket" env:"AWS_BUCKET" default:"classalbum" description:"S3 bucket for cached thumbnails"`
	CookieSecret           string `flag:"cookiesecret" env:"COOKIE_SECRET" default:"password" description:"Secret for encoding cookies"`
	DownloadTimeoutSeconds int    `flag:"dlt" env:"DOWNLOAD_TIMEOUT_SECONDS" default:"30" description:"Timeout for retrieving an image from its host"`
	FavoritesEndpoint      string `flag:"favep" env:"FAVORITES_ENDPOINT" default:"" description:"URL to fetch initial favorites from. Empty disables the fetch"`
	FavoritesIdleMinutes   int    `flag:"favidle" env:"FAVORITES_IDLE_MINUTES" default:"1440" description:"Minutes a visitor's favorites are kept after their last request"`
	FavoritesTimeoutSecs   int    `flag:"favt" env:"FAVORITES_TIMEOUT_SECONDS" default:"5" description:"Timeout for the initial favorites fetch"`
	HeroImageURL           string `flag:"heroimage" env:"HERO_IMAGE_URL" default:"https://images.unsplash.com/photo-1503023345310-bd7c1de61c7d" description:"Hero banner image"`
	Host                   string `flag:"host" env:"HOST" default:"localhost:8081" description:"The address and port to bind the HTTP server to"`
	LogLevel               string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxCacheWorkers        int    `flag:"mcc" env:"MAX_CACHE_WORKERS" default:"8" description:"Maximum number of concurrent thumbnail cache workers"`
	MaxVisitors            int    `flag:"maxvisitors" env:"MAX_VISITORS" default:"10000" description:"Maximum number of visitors whose favorites are held in memory"`
	ThumbnailCache         string `flag:"thumbcache" env:"THUMBNAIL_CACHE" default:"memory" description:"Where optimized images are cached. Valid values are 'memory' and 's3'"`
	ThumbnailFolder        string `flag:"thumbfolder" env:"THUMBNAIL_FOLDER" default:"thumbnails" description:"S3 folder for cached thumbnails"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

func (c Config) IsDevelopment() bool {
	return c.AppMode == "development"
}

// ServiceWorkerEnabled is false during local development.
func (c Config) ServiceWorkerEnabled() bool {
	return !c.IsDevelopment()
}

func (c Config) ImageHosts() []string {
	return services.ParseImageHosts(c.AllowedImageHosts)
}

func (c Config) UseS3ThumbnailCache() bool {
	return c.ThumbnailCache == "s3"
}

func (c Config) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutSeconds) * time.Second
}

func (c Config) FavoritesIdleTimeout() time.Duration {
	return time.Duration(c.FavoritesIdleMinutes) * time.Minute
}

func (c Config) FavoritesTimeout() time.Duration {
	return time.Duration(c.FavoritesTimeoutSecs) * time.Second
}
