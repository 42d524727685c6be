package models

type Photo struct {
	ID       uint
	Src      string
	Title    string
	Category Category
}
