package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpFavoritesStoreFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v1", r.URL.Query().Get("visitor"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"photo": "https://images.unsplash.com/a"}, {"photo": "https://images.unsplash.com/b"}]`))
	}))
	defer server.Close()

	store := NewHttpFavoritesStore(HttpFavoritesStoreConfig{
		Endpoint: server.URL + "/favorites/",
		Timeout:  time.Second,
	})

	urls, err := store.Fetch(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://images.unsplash.com/a", "https://images.unsplash.com/b"}, urls)
}

func TestHttpFavoritesStoreFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			_, _ = w.Write([]byte(`not json`))
			return
		}

		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	for _, path := range []string{"/unauthorized", "/broken"} {
		store := NewHttpFavoritesStore(HttpFavoritesStoreConfig{Endpoint: server.URL + path, Timeout: time.Second})

		_, err := store.Fetch(context.Background(), "v1")
		assert.Error(t, err, path)
	}
}

func TestHttpFavoritesStoreHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	store := NewHttpFavoritesStore(HttpFavoritesStoreConfig{Endpoint: server.URL, Timeout: 10 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Fetch(ctx, "v1")
	assert.ErrorIs(t, err, context.Canceled)
}
