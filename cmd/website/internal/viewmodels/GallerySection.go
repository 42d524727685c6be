package viewmodels

import "github.com/adampresley/classalbum/pkg/models"

type GallerySection struct {
	Title     string
	HideTitle bool
	Category  models.Category
	Tiles     []Tile
}

type Tile struct {
	Index        int
	Src          string
	Title        string
	ThumbnailURL string
	DownloadURL  string
	IsFavorite   bool
	ShowDownload bool
}

type Lightbox struct {
	BaseViewModel

	Open     bool
	Category models.Category
	Index    int
	Count    int
	Photo    Tile
	ImageURL string
}
