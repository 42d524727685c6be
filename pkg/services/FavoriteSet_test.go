package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleFlipsMembership(t *testing.T) {
	set := NewFavoriteSet()

	assert.True(t, set.Toggle("a"))
	assert.True(t, set.IsFavorite("a"))

	assert.False(t, set.Toggle("a"))
	assert.False(t, set.IsFavorite("a"))
}

func TestToggleTwiceRestoresSet(t *testing.T) {
	set := NewFavoriteSet("a", "b")
	before := set.URLs()

	for _, src := range []string{"a", "c"} {
		set.Toggle(src)
		set.Toggle(src)
		assert.Equal(t, before, set.URLs())
	}
}

func TestDuplicateInsertIsNoop(t *testing.T) {
	set := NewFavoriteSet("a", "a")
	assert.Equal(t, 1, set.Len())

	set.merge([]string{"a", "b", "b"})
	assert.Equal(t, []string{"a", "b"}, set.URLs())
}

func TestConcurrentToggles(t *testing.T) {
	set := NewFavoriteSet()
	wg := sync.WaitGroup{}

	// An even number of toggles per URL leaves it out of the set
	for i := 0; i < 100; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			set.Toggle("a")
			_ = set.IsFavorite("a")
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, set.Len())
}
