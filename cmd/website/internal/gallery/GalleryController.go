package gallery

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/classalbum/cmd/website/internal/viewmodels"
	"github.com/adampresley/classalbum/pkg/lightbox"
	"github.com/adampresley/classalbum/pkg/models"
	"github.com/adampresley/classalbum/pkg/services"
)

type GalleryHandlers interface {
	DownloadImage(w http.ResponseWriter, r *http.Request)
	Lightbox(w http.ResponseWriter, r *http.Request)
	ToggleFavorite(w http.ResponseWriter, r *http.Request)
}

type GalleryControllerConfig struct {
	DownloadService  services.DownloadServicer
	FavoritesService services.FavoritesServicer
	PhotoService     services.PhotoServicer
	Renderer         rendering.TemplateRenderer
}

type GalleryController struct {
	downloadService  services.DownloadServicer
	favoritesService services.FavoritesServicer
	photoService     services.PhotoServicer
	renderer         rendering.TemplateRenderer
}

func NewGalleryController(config GalleryControllerConfig) GalleryController {
	return GalleryController{
		downloadService:  config.DownloadService,
		favoritesService: config.FavoritesService,
		photoService:     config.PhotoService,
		renderer:         config.Renderer,
	}
}

/*
GET /download
*/
func (c GalleryController) DownloadImage(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		image services.DownloadedImage
	)

	src := httphelpers.GetFromRequest[string](r, "src")
	title := httphelpers.GetFromRequest[string](r, "title")

	if !c.photoService.Contains(src) {
		httphelpers.WriteText(w, http.StatusNotFound, "Photo not found")
		return
	}

	if image, err = c.downloadService.Fetch(r.Context(), src); err != nil {
		slog.Error("error downloading image", "error", err, "src", src)

		if errors.Is(err, services.ErrImageHostNotAllowed) {
			httphelpers.WriteText(w, http.StatusForbidden, "This photo cannot be downloaded")
			return
		}

		httphelpers.WriteText(w, http.StatusBadGateway, "Could not download this photo. Please try again.")
		return
	}

	defer image.Body.Close()
	fileName := services.DownloadFileName(title)

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if image.Size >= 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", image.Size))
	}

	if _, err = io.Copy(w, image.Body); err != nil {
		slog.Error("error streaming image download", "error", err, "src", src)
	}
}

/*
GET /gallery/{category}/lightbox

The page sends the state it is showing (open, index, count) plus the
action to apply. A closed result renders nothing, which removes the
overlay.
*/
func (c GalleryController) Lightbox(w http.ResponseWriter, r *http.Request) {
	var (
		err      error
		category models.Category
	)

	if category, err = models.ParseCategory(httphelpers.GetFromRequest[string](r, "category")); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "Category not found")
		return
	}

	visitor := viewmodels.GetVisitorFromContext(r)
	favorites := c.favoritesService.ForVisitor(visitor.ID)
	photos := c.photoService.GetForTab(category, favorites)

	state := ResolveLightbox(LightboxRequest{
		Action: lightbox.Action(httphelpers.GetFromRequest[string](r, "action")),
		Count:  queryInt(r, "count", len(photos)),
		Index:  queryInt(r, "index", 0),
		Key:    httphelpers.GetFromRequest[string](r, "key"),
		Open:   httphelpers.GetFromRequest[string](r, "open") == "true",
	}, len(photos))

	if !state.Open {
		httphelpers.WriteHtml(w, http.StatusOK, "")
		return
	}

	photo := BuildTile(state.Index, photos[state.Index], favorites)

	viewData := viewmodels.Lightbox{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Open:     state.Open,
		Category: category,
		Index:    state.Index,
		Count:    state.Length,
		Photo:    photo,
		ImageURL: ImageURL(photo.Src, services.LightboxImageWidth),
	}

	c.renderer.Render("pages/lightbox", viewData, w)
}

/*
PUT /favorites/toggle
*/
func (c GalleryController) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	src := httphelpers.GetFromRequest[string](r, "src")

	if !c.photoService.Contains(src) {
		httphelpers.WriteText(w, http.StatusNotFound, "Photo not found")
		return
	}

	visitor := viewmodels.GetVisitorFromContext(r)
	isFavorite := c.favoritesService.Toggle(visitor.ID, src)

	slog.Debug("toggled favorite", "visitorID", visitor.ID, "src", src, "isFavorite", isFavorite)

	w.Header().Set("HX-Trigger", "favoritesChanged")
	httphelpers.WriteHtml(w, http.StatusOK, HeartIcon(isFavorite))
}

type LightboxRequest struct {
	Action lightbox.Action
	Count  int
	Index  int
	Key    string
	Open   bool
}

/*
ResolveLightbox rebuilds the state the page was showing and applies the
requested action. If the list changed length since the page rendered, the
viewer closes.
*/
func ResolveLightbox(req LightboxRequest, length int) lightbox.State {
	if req.Action == lightbox.ActionOpen {
		return lightbox.New(length).OpenAt(req.Index)
	}

	state := lightbox.New(req.Count)

	if req.Open {
		state = state.OpenAt(req.Index)
	}

	return state.Resize(length).Apply(req.Action, req.Key)
}

func queryInt(r *http.Request, name string, fallback int) int {
	value := httphelpers.GetFromRequest[string](r, name)

	if result, err := strconv.Atoi(value); err == nil {
		return result
	}

	return fallback
}
