package gallery

import (
	"fmt"
	"net/url"

	"github.com/adampresley/classalbum/cmd/website/internal/viewmodels"
	"github.com/adampresley/classalbum/pkg/models"
	"github.com/adampresley/classalbum/pkg/services"
)

type SectionConfig struct {
	Category  models.Category
	Title     string
	HideTitle bool
	Photos    []models.Photo
	Favorites services.FavoriteChecker
}

/*
BuildSection turns an ordered photo list into grid tiles. Tile order is
the input order and each tile's Index is its position in the list.
*/
func BuildSection(config SectionConfig) viewmodels.GallerySection {
	result := viewmodels.GallerySection{
		Title:     config.Title,
		HideTitle: config.HideTitle,
		Category:  config.Category,
		Tiles:     make([]viewmodels.Tile, 0, len(config.Photos)),
	}

	for index, photo := range config.Photos {
		result.Tiles = append(result.Tiles, BuildTile(index, photo, config.Favorites))
	}

	return result
}

func BuildTile(index int, photo models.Photo, favorites services.FavoriteChecker) viewmodels.Tile {
	isFav := favorites != nil && favorites.IsFavorite(photo.Src)

	return viewmodels.Tile{
		Index:        index,
		Src:          photo.Src,
		Title:        photo.Title,
		ThumbnailURL: ImageURL(photo.Src, services.GridImageWidth),
		DownloadURL:  DownloadURL(photo.Src, photo.Title),
		IsFavorite:   isFav,
		ShowDownload: !isFav,
	}
}

func ImageURL(src string, width uint) string {
	q := url.Values{}
	q.Set("src", src)
	q.Set("w", fmt.Sprint(width))

	return "/images?" + q.Encode()
}

func DownloadURL(src, title string) string {
	q := url.Values{}
	q.Set("src", src)
	q.Set("title", title)

	return "/download?" + q.Encode()
}

/*
HeartIcon is the markup swapped into a favorite button after a toggle.
*/
func HeartIcon(isFavorite bool) string {
	icon := "icon"

	if isFavorite {
		icon += " icon-heart"
	} else {
		icon += " icon-empty-heart"
	}

	return fmt.Sprintf("<i class='%s'></i>", icon)
}
