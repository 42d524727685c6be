package services

import (
	"github.com/adampresley/classalbum/pkg/models"
)

type PhotoServicer interface {
	Contains(src string) bool
	GetAll() []models.Photo
	GetByCategory(category models.Category) []models.Photo
	GetFavorites(favorites FavoriteChecker) []models.Photo
	GetForTab(category models.Category, favorites FavoriteChecker) []models.Photo
}

type BasePhoto struct {
	Src   string
	Title string
}

/*
CategorySeed describes how a category is materialized: its hand-authored
base photos are repeated, in order, until Count photos exist.
*/
type CategorySeed struct {
	Category models.Category
	Count    int
	Base     []BasePhoto
}

type PhotoServiceConfig struct {
	Seeds []CategorySeed
}

type PhotoService struct {
	photos     []models.Photo
	byCategory map[models.Category][]models.Photo
	sources    map[string]struct{}
}

func NewPhotoService(config PhotoServiceConfig) PhotoService {
	result := PhotoService{
		photos:     []models.Photo{},
		byCategory: map[models.Category][]models.Photo{},
		sources:    map[string]struct{}{},
	}

	id := uint(1)

	for _, seed := range config.Seeds {
		if len(seed.Base) == 0 {
			continue
		}

		for i := 0; i < seed.Count; i++ {
			base := seed.Base[i%len(seed.Base)]

			photo := models.Photo{
				ID:       id,
				Src:      base.Src,
				Title:    base.Title,
				Category: seed.Category,
			}

			result.photos = append(result.photos, photo)
			result.byCategory[seed.Category] = append(result.byCategory[seed.Category], photo)
			result.sources[photo.Src] = struct{}{}
			id++
		}
	}

	return result
}

func (s PhotoService) Contains(src string) bool {
	_, ok := s.sources[src]
	return ok
}

func (s PhotoService) GetAll() []models.Photo {
	return clonePhotos(s.photos)
}

func (s PhotoService) GetByCategory(category models.Category) []models.Photo {
	return clonePhotos(s.byCategory[category])
}

/*
GetFavorites returns every photo in the collection whose source URL is a
favorite, in collection order. A URL shared by several photos yields all
of them.
*/
func (s PhotoService) GetFavorites(favorites FavoriteChecker) []models.Photo {
	result := []models.Photo{}

	if favorites == nil {
		return result
	}

	for _, photo := range s.photos {
		if favorites.IsFavorite(photo.Src) {
			result = append(result, photo)
		}
	}

	return result
}

func (s PhotoService) GetForTab(category models.Category, favorites FavoriteChecker) []models.Photo {
	if category.IsView() {
		return s.GetFavorites(favorites)
	}

	return s.GetByCategory(category)
}

func clonePhotos(photos []models.Photo) []models.Photo {
	result := make([]models.Photo, len(photos))
	copy(result, photos)
	return result
}

/*
DefaultSeeds is the class album's mock collection.
*/
func DefaultSeeds() []CategorySeed {
	return []CategorySeed{
		{
			Category: models.CategoryStudents,
			Count:    12,
			Base: []BasePhoto{
				{Src: "https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e", Title: "Student 1"},
				{Src: "https://images.unsplash.com/photo-1494790108377-be9c29b29330", Title: "Student 2"},
				{Src: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d", Title: "Student 3"},
				{Src: "https://images.unsplash.com/photo-1544005313-94ddf0286df2", Title: "Student 4"},
			},
		},
		{
			Category: models.CategoryBanquet,
			Count:    9,
			Base: []BasePhoto{
				{Src: "https://images.unsplash.com/photo-1532634896-26909d0d4b6a", Title: "Banquet 1"},
				{Src: "https://images.unsplash.com/photo-1524504388940-b1c1722653e1", Title: "Banquet 2"},
				{Src: "https://images.unsplash.com/photo-1521334884684-d80222895322", Title: "Banquet 3"},
			},
		},
		{
			Category: models.CategoryCeremony,
			Count:    9,
			Base: []BasePhoto{
				{Src: "https://images.unsplash.com/photo-1551836022-4c4c79ecde51", Title: "Ceremony 1"},
				{Src: "https://images.unsplash.com/photo-1524503033411-c9566986fc8f", Title: "Ceremony 2"},
				{Src: "https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e", Title: "Ceremony 3"},
			},
		},
	}
}
