package viewmodels

import "github.com/adampresley/classalbum/pkg/models"

type GalleryPage struct {
	BaseViewModel

	Hero      Hero
	Tabs      []NavTab
	ActiveTab models.Category
	Gallery   GallerySection
}

type Hero struct {
	ImageURL string
	Title    string
	Subtitle string
}

type NavTab struct {
	Category models.Category
	Label    string
	IsActive bool
}
