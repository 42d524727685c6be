package main

import (
	"context"
	"embed"
	"encoding/gob"
	"io/fs"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/classalbum/cmd/website/internal/cache"
	"github.com/adampresley/classalbum/cmd/website/internal/configuration"
	"github.com/adampresley/classalbum/cmd/website/internal/gallery"
	"github.com/adampresley/classalbum/cmd/website/internal/home"
	"github.com/adampresley/classalbum/cmd/website/internal/images"
	"github.com/adampresley/classalbum/pkg/models"
	"github.com/adampresley/classalbum/pkg/services"
)

var (
	Version string = "development"
	appName string = "classalbum"

	//go:embed app
	appFS embed.FS

	config configuration.Config

	/* Services */
	cacheCreatorService cache.CacheCreator
	downloadService     services.DownloadServicer
	favoritesService    services.FavoritesServicer
	imageService        services.ImageServicer
	photoService        services.PhotoServicer
	renderer            rendering.TemplateRenderer
	sessionService      sessions.Session[*models.Visitor]

	/* Controllers */
	galleryController gallery.GalleryHandlers
	homeController    home.HomeHandlers
	imageController   images.ImageHandlers
)

func main() {
	var (
		err            error
		favoritesStore services.FavoritesStore
		thumbnailCache services.ThumbnailCache
		s3Client       s3.S3Client
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("mode", config.AppMode),
		slog.String("thumbnailCache", config.ThumbnailCache),
		slog.Any("imageHosts", config.ImageHosts()),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Setup services
	 */
	gob.Register(&models.Visitor{})

	cookieStore := sessions.NewCookieStore(config.CookieSecret)
	sessionService = sessions.NewSessionWrapper[*models.Visitor](cookieStore, "classalbumvisitors", "visitor")

	if config.UseS3ThumbnailCache() {
		awsConfig := &awsconfig.Config{
			Endpoint:        config.AwsEndpointUrl,
			Region:          config.AwsRegion,
			AccessKeyID:     config.AwsAccessKeyId,
			SecretAccessKey: config.AwsSecretAccessKey,
		}

		retrier.Retry(func() error {
			if err = awsConfig.Load(); err != nil {
				slog.Error("failed to load AWS config. trying again", "error", err)
				return err
			}

			return nil
		})

		if err != nil {
			panic(err)
		}

		if s3Client, err = s3.NewClient(awsConfig); err != nil {
			panic(err)
		}

		thumbnailCache = services.NewS3ThumbnailCache(services.S3ThumbnailCacheConfig{
			Bucket:   config.AwsBucket,
			Folder:   config.ThumbnailFolder,
			S3Client: s3Client,
		})
	} else {
		thumbnailCache = services.NewMemoryThumbnailCache()
	}

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	if config.FavoritesEndpoint != "" {
		favoritesStore = services.NewHttpFavoritesStore(services.HttpFavoritesStoreConfig{
			Endpoint: config.FavoritesEndpoint,
			Timeout:  config.FavoritesTimeout(),
		})
	} else {
		favoritesStore = services.InertFavoritesStore{}
	}

	photoService = services.NewPhotoService(services.PhotoServiceConfig{
		Seeds: services.DefaultSeeds(),
	})

	favoritesService = services.NewFavoritesService(services.FavoritesServiceConfig{
		Store:        favoritesStore,
		FetchTimeout: config.FavoritesTimeout(),
		IdleTimeout:  config.FavoritesIdleTimeout(),
		MaxVisitors:  config.MaxVisitors,
		ShutdownCtx:  shutdownCtx,
	})

	downloadService = services.NewDownloadService(services.DownloadServiceConfig{
		HostPolicy: services.NewImageHostPolicy(config.ImageHosts()),
		Timeout:    config.DownloadTimeout(),
	})

	imageService = services.NewImageService(services.ImageServiceConfig{
		Cache:      thumbnailCache,
		Downloader: downloadService,
	})

	cacheCreatorService = cache.NewCacheCreatorService(cache.CacheCreatorConfig{
		AwsBucket:       config.AwsBucket,
		AwsRegion:       config.AwsRegion,
		ImageService:    imageService,
		MaxCacheWorkers: config.MaxCacheWorkers,
		PhotoService:    photoService,
		S3Client:        s3Client,
		ShutdownCtx:     shutdownCtx,
		ThumbnailFolder: config.ThumbnailFolder,
	})

	/*
	 * Setup controllers
	 */
	galleryController = gallery.NewGalleryController(gallery.GalleryControllerConfig{
		DownloadService:  downloadService,
		FavoritesService: favoritesService,
		PhotoService:     photoService,
		Renderer:         renderer,
	})

	homeController = home.NewHomeController(home.HomeControllerConfig{
		Config:           &config,
		FavoritesService: favoritesService,
		PhotoService:     photoService,
		Renderer:         renderer,
	})

	imageController = images.NewImageController(images.ImageControllerConfig{
		HeroImageURL: config.HeroImageURL,
		ImageService: imageService,
		PhotoService: photoService,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	visitorMiddleware := newVisitorMiddleware(
		sessionService,
		[]string{
			"/static",
			"/heartbeat",
			"/sw.js",
		},
	)

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: homeController.HomePage, Middlewares: []mux.MiddlewareFunc{visitorMiddleware}},
		{Path: "GET /gallery/{category}/lightbox", HandlerFunc: galleryController.Lightbox, Middlewares: []mux.MiddlewareFunc{visitorMiddleware}},
		{Path: "PUT /favorites/toggle", HandlerFunc: galleryController.ToggleFavorite, Middlewares: []mux.MiddlewareFunc{visitorMiddleware}},
		{Path: "GET /download", HandlerFunc: galleryController.DownloadImage},
		{Path: "GET /images", HandlerFunc: imageController.OptimizedImage},
	}

	if config.ServiceWorkerEnabled() {
		routes = append(routes, mux.Route{Path: "GET /sw.js", HandlerFunc: serviceWorker})
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                config.IsDevelopment(),
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Start background jobs
	 */
	setupCacheCreator(shutdownCtx)
	setupFavoritesSweeper(shutdownCtx)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

/*
GET /sw.js

Served from the root so the worker's scope covers the whole site.
*/
func serviceWorker(w http.ResponseWriter, r *http.Request) {
	b, err := fs.ReadFile(appFS, "app/static/js/sw.js")

	if err != nil {
		slog.Error("error reading service worker", "error", err)
		httphelpers.TextInternalServerError(w, "Service worker unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/javascript")
	w.Header().Set("Service-Worker-Allowed", "/")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(b)
}

/*
setupCacheCreator warms the thumbnail cache now and every hour after. A
tick that lands while a run is still going is skipped.
*/
func setupCacheCreator(ctx context.Context) {
	start := newSkippingRunner(func() {
		result := cacheCreatorService.CreateCache()
		slog.Info("cache creator finished.", "warmed", result.Warmed, "failed", result.Failed, "pruned", result.Pruned)
	})

	runner := func() {
		if !start() {
			slog.Info("cache creator already running. skipping...")
		}
	}

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		runner()

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				runner()
			}
		}
	}()
}

/*
newSkippingRunner returns a func that starts job in the background unless
the previous start is still running. It reports whether job was started.
*/
func newSkippingRunner(job func()) func() bool {
	var running atomic.Bool

	return func() bool {
		if !running.CompareAndSwap(false, true) {
			return false
		}

		go func() {
			defer running.Store(false)
			job()
		}()

		return true
	}
}

/*
setupFavoritesSweeper drops favorites of visitors who have gone idle.
*/
func setupFavoritesSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				if evicted := favoritesService.EvictIdle(); evicted > 0 {
					slog.Info("evicted idle visitor favorites", "count", evicted)
				}
			}
		}
	}()
}
