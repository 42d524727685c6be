package home

import (
	"testing"

	"github.com/adampresley/classalbum/cmd/website/internal/configuration"
	"github.com/adampresley/classalbum/pkg/models"
	"github.com/adampresley/classalbum/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(mode string) (HomeController, services.FavoritesService) {
	favorites := services.NewFavoritesService(services.FavoritesServiceConfig{})

	return NewHomeController(HomeControllerConfig{
		Config: &configuration.Config{
			AppMode:      mode,
			AlbumTitle:   "Class of 2025",
			HeroImageURL: "https://images.unsplash.com/photo-1503023345310-bd7c1de61c7d",
		},
		FavoritesService: favorites,
		PhotoService:     services.NewPhotoService(services.PhotoServiceConfig{Seeds: services.DefaultSeeds()}),
	}), favorites
}

func TestBuildGalleryPageForEachTab(t *testing.T) {
	c, _ := newTestController("production")

	expected := map[models.Category]int{
		models.CategoryStudents:  12,
		models.CategoryBanquet:   9,
		models.CategoryCeremony:  9,
		models.CategoryFavorites: 0,
	}

	for category, count := range expected {
		page := c.BuildGalleryPage(string(category), "v1")

		assert.Equal(t, category, page.ActiveTab)
		assert.Len(t, page.Gallery.Tiles, count, category)
		assert.True(t, page.Gallery.HideTitle)

		active := 0

		for _, tab := range page.Tabs {
			if tab.IsActive {
				active++
				assert.Equal(t, category, tab.Category)
			}
		}

		assert.Equal(t, 1, active)
	}
}

func TestBuildGalleryPageDefaultsToStudents(t *testing.T) {
	c, _ := newTestController("production")

	assert.Equal(t, models.CategoryStudents, c.BuildGalleryPage("", "v1").ActiveTab)
	assert.Equal(t, models.CategoryStudents, c.BuildGalleryPage("nope", "v1").ActiveTab)
}

func TestFavoritesTabFollowsToggles(t *testing.T) {
	c, favorites := newTestController("production")

	favorites.Toggle("v1", "https://images.unsplash.com/photo-1532634896-26909d0d4b6a")

	page := c.BuildGalleryPage("favorites", "v1")
	require.Len(t, page.Gallery.Tiles, 3)

	for _, tile := range page.Gallery.Tiles {
		assert.True(t, tile.IsFavorite)
		assert.False(t, tile.ShowDownload)
	}

	assert.Empty(t, c.BuildGalleryPage("favorites", "v2").Gallery.Tiles)
}

func TestServiceWorkerFlag(t *testing.T) {
	dev, _ := newTestController("development")
	prod, _ := newTestController("production")

	assert.False(t, dev.BuildGalleryPage("", "v1").ServiceWorkerEnabled)
	assert.True(t, prod.BuildGalleryPage("", "v1").ServiceWorkerEnabled)
}

func TestHero(t *testing.T) {
	c, _ := newTestController("production")
	page := c.BuildGalleryPage("", "v1")

	assert.Equal(t, "Class of 2025", page.Hero.Title)
	assert.Contains(t, page.Hero.ImageURL, "/images?src=")
}
