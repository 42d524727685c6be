package models

import "fmt"

var (
	ErrUnknownCategory = fmt.Errorf("unknown category")
)

type Category string

const (
	CategoryStudents  Category = "students"
	CategoryBanquet   Category = "banquet"
	CategoryCeremony  Category = "ceremony"
	CategoryFavorites Category = "favorites"
)

type Tab struct {
	Category Category
	Label    string
}

/*
Tabs is the navigation bar, in display order.
*/
var Tabs = []Tab{
	{Category: CategoryStudents, Label: "Students"},
	{Category: CategoryBanquet, Label: "Banquet"},
	{Category: CategoryCeremony, Label: "Ceremony"},
	{Category: CategoryFavorites, Label: "Favorites"},
}

func ParseCategory(value string) (Category, error) {
	for _, tab := range Tabs {
		if string(tab.Category) == value {
			return tab.Category, nil
		}
	}

	return "", fmt.Errorf("%w: '%s'", ErrUnknownCategory, value)
}

// IsView reports whether the category is derived from favorites rather than a photo tag.
func (c Category) IsView() bool {
	return c == CategoryFavorites
}
