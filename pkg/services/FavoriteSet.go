package services

import (
	"sort"
	"sync"
)

type FavoriteChecker interface {
	IsFavorite(src string) bool
}

/*
FavoriteToggler is the capability handed to gallery views. Toggle is the
only way favorites change.
*/
type FavoriteToggler interface {
	FavoriteChecker
	Toggle(src string) bool
}

type FavoriteSet struct {
	mu   sync.RWMutex
	urls map[string]struct{}
}

func NewFavoriteSet(urls ...string) *FavoriteSet {
	result := &FavoriteSet{
		urls: make(map[string]struct{}, len(urls)),
	}

	for _, u := range urls {
		result.urls[u] = struct{}{}
	}

	return result
}

func (f *FavoriteSet) IsFavorite(src string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.urls[src]
	return ok
}

// Toggle flips membership of src and returns whether it is now a favorite.
func (f *FavoriteSet) Toggle(src string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.urls[src]; ok {
		delete(f.urls, src)
		return false
	}

	f.urls[src] = struct{}{}
	return true
}

func (f *FavoriteSet) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.urls)
}

// URLs returns a sorted snapshot of the set.
func (f *FavoriteSet) URLs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make([]string, 0, len(f.urls))

	for u := range f.urls {
		result = append(result, u)
	}

	sort.Strings(result)
	return result
}

/*
merge adds urls that arrived from the favorites store. Existing entries
are left alone.
*/
func (f *FavoriteSet) merge(urls []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range urls {
		f.urls[u] = struct{}{}
	}
}
