package images

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/classalbum/pkg/services"
)

type ImageHandlers interface {
	OptimizedImage(w http.ResponseWriter, r *http.Request)
}

type ImageControllerConfig struct {
	HeroImageURL string
	ImageService services.ImageServicer
	PhotoService services.PhotoServicer
}

type ImageController struct {
	heroImageURL string
	imageService services.ImageServicer
	photoService services.PhotoServicer
}

func NewImageController(config ImageControllerConfig) ImageController {
	return ImageController{
		heroImageURL: config.HeroImageURL,
		imageService: config.ImageService,
		photoService: config.PhotoService,
	}
}

/*
GET /images?src={url}&w={width}

Only catalog photos and the hero banner are served.
*/
func (c ImageController) OptimizedImage(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		data []byte
	)

	src := httphelpers.GetFromRequest[string](r, "src")
	width := services.GridImageWidth

	if src == "" || (src != c.heroImageURL && !c.photoService.Contains(src)) {
		httphelpers.WriteText(w, http.StatusNotFound, "Image not found")
		return
	}

	if parsed, err := strconv.ParseUint(httphelpers.GetFromRequest[string](r, "w"), 10, 32); err == nil {
		width = uint(parsed)
	}

	if data, err = c.imageService.Optimize(r.Context(), src, width); err != nil {
		slog.Error("error optimizing image", "error", err, "src", src, "width", width)

		if errors.Is(err, services.ErrImageHostNotAllowed) {
			httphelpers.WriteText(w, http.StatusBadRequest, "Image host not allowed")
			return
		}

		httphelpers.WriteText(w, http.StatusBadGateway, "Could not load image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")

	_, _ = w.Write(data)
}
