package home

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/classalbum/cmd/website/internal/configuration"
	"github.com/adampresley/classalbum/cmd/website/internal/gallery"
	"github.com/adampresley/classalbum/cmd/website/internal/viewmodels"
	"github.com/adampresley/classalbum/pkg/models"
	"github.com/adampresley/classalbum/pkg/services"
)

type HomeHandlers interface {
	HomePage(w http.ResponseWriter, r *http.Request)
}

type HomeControllerConfig struct {
	Config           *configuration.Config
	FavoritesService services.FavoritesServicer
	PhotoService     services.PhotoServicer
	Renderer         rendering.TemplateRenderer
}

type HomeController struct {
	config           *configuration.Config
	favoritesService services.FavoritesServicer
	photoService     services.PhotoServicer
	renderer         rendering.TemplateRenderer
}

func NewHomeController(config HomeControllerConfig) HomeController {
	return HomeController{
		config:           config.Config,
		favoritesService: config.FavoritesService,
		photoService:     config.PhotoService,
		renderer:         config.Renderer,
	}
}

/*
GET /
*/
func (c HomeController) HomePage(w http.ResponseWriter, r *http.Request) {
	pageName := "pages/home"

	visitor := viewmodels.GetVisitorFromContext(r)
	viewData := c.BuildGalleryPage(httphelpers.GetFromRequest[string](r, "tab"), visitor.ID)
	viewData.IsHtmx = httphelpers.IsHtmx(r)

	c.renderer.Render(pageName, viewData, w)
}

/*
BuildGalleryPage assembles the page for one tab. Unknown tabs fall back to
students.
*/
func (c HomeController) BuildGalleryPage(tab, visitorID string) viewmodels.GalleryPage {
	activeTab, err := models.ParseCategory(tab)

	if err != nil {
		if tab != "" {
			slog.Debug("unknown tab requested. using default", "tab", tab)
		}

		activeTab = models.CategoryStudents
	}

	favorites := c.favoritesService.ForVisitor(visitorID)

	viewData := viewmodels.GalleryPage{
		BaseViewModel: viewmodels.BaseViewModel{
			ServiceWorkerEnabled: c.config.ServiceWorkerEnabled(),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/pages/gallery.js"},
			},
		},
		Hero: viewmodels.Hero{
			ImageURL: gallery.ImageURL(c.config.HeroImageURL, services.LightboxImageWidth),
			Title:    c.config.AlbumTitle,
			Subtitle: c.config.AlbumSubtitle,
		},
		Tabs: slices.Map(models.Tabs, func(input models.Tab, index int) viewmodels.NavTab {
			return viewmodels.NavTab{
				Category: input.Category,
				Label:    input.Label,
				IsActive: input.Category == activeTab,
			}
		}),
		ActiveTab: activeTab,
	}

	viewData.Gallery = gallery.BuildSection(gallery.SectionConfig{
		Category:  activeTab,
		HideTitle: true,
		Photos:    c.photoService.GetForTab(activeTab, favorites),
		Favorites: favorites,
	})

	return viewData
}
