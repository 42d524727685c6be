package models

/*
Visitor is an anonymous browser session. Favorites are scoped to it.
*/
type Visitor struct {
	ID string
}
