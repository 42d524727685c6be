package gallery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/adampresley/classalbum/pkg/lightbox"
	"github.com/adampresley/classalbum/pkg/models"
	"github.com/adampresley/classalbum/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHarness struct {
	controller GalleryController
	favorites  services.FavoritesService
	photos     services.PhotoService
	hostURL    string
}

func newTestHarness(t *testing.T) testHarness {
	t.Helper()

	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(host.Close)

	u, err := url.Parse(host.URL)
	require.NoError(t, err)

	photos := services.NewPhotoService(services.PhotoServiceConfig{
		Seeds: []services.CategorySeed{
			{
				Category: models.CategoryStudents,
				Count:    4,
				Base: []services.BasePhoto{
					{Src: host.URL + "/a.jpg", Title: "Student 1"},
					{Src: host.URL + "/b.jpg", Title: ""},
				},
			},
			{
				Category: models.CategoryBanquet,
				Count:    1,
				Base:     []services.BasePhoto{{Src: host.URL + "/missing.jpg", Title: "Gone"}},
			},
		},
	})

	favorites := services.NewFavoritesService(services.FavoritesServiceConfig{})

	controller := NewGalleryController(GalleryControllerConfig{
		DownloadService: services.NewDownloadService(services.DownloadServiceConfig{
			HostPolicy: services.NewImageHostPolicy([]string{u.Host}),
			Timeout:    time.Second,
		}),
		FavoritesService: favorites,
		PhotoService:     photos,
	})

	return testHarness{
		controller: controller,
		favorites:  favorites,
		photos:     photos,
		hostURL:    host.URL,
	}
}

func withVisitor(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), "visitor", &models.Visitor{ID: id})
	return r.WithContext(ctx)
}

func TestToggleFavorite(t *testing.T) {
	h := newTestHarness(t)
	src := h.hostURL + "/a.jpg"
	target := "/favorites/toggle?" + url.Values{"src": {src}}.Encode()

	w := httptest.NewRecorder()
	h.controller.ToggleFavorite(w, withVisitor(httptest.NewRequest(http.MethodPut, target, nil), "v1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "icon-heart")
	assert.Equal(t, "favoritesChanged", w.Header().Get("HX-Trigger"))
	assert.True(t, h.favorites.ForVisitor("v1").IsFavorite(src))

	w = httptest.NewRecorder()
	h.controller.ToggleFavorite(w, withVisitor(httptest.NewRequest(http.MethodPut, target, nil), "v1"))

	assert.Contains(t, w.Body.String(), "icon-empty-heart")
	assert.False(t, h.favorites.ForVisitor("v1").IsFavorite(src))
}

func TestToggleFavoriteUnknownPhoto(t *testing.T) {
	h := newTestHarness(t)
	target := "/favorites/toggle?" + url.Values{"src": {"https://images.unsplash.com/nope"}}.Encode()

	w := httptest.NewRecorder()
	h.controller.ToggleFavorite(w, withVisitor(httptest.NewRequest(http.MethodPut, target, nil), "v1"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, h.favorites.ForVisitor("v1").Len())
}

func TestDownloadImage(t *testing.T) {
	h := newTestHarness(t)
	target := "/download?" + url.Values{"src": {h.hostURL + "/a.jpg"}, "title": {"Student 1"}}.Encode()

	w := httptest.NewRecorder()
	h.controller.DownloadImage(w, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Student 1.jpg"`, w.Header().Get("Content-Disposition"))
}

func TestDownloadImageFallbackName(t *testing.T) {
	h := newTestHarness(t)
	target := "/download?" + url.Values{"src": {h.hostURL + "/b.jpg"}}.Encode()

	w := httptest.NewRecorder()
	h.controller.DownloadImage(w, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, `attachment; filename="photo.jpg"`, w.Header().Get("Content-Disposition"))
}

func TestDownloadImageFailureIsReported(t *testing.T) {
	h := newTestHarness(t)
	target := "/download?" + url.Values{"src": {h.hostURL + "/missing.jpg"}}.Encode()

	w := httptest.NewRecorder()
	h.controller.DownloadImage(w, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Could not download")
}

func TestDownloadImageUnknownPhoto(t *testing.T) {
	h := newTestHarness(t)
	target := "/download?" + url.Values{"src": {"https://evil.example.com/a.jpg"}}.Encode()

	w := httptest.NewRecorder()
	h.controller.DownloadImage(w, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLightboxClosedRendersNothing(t *testing.T) {
	h := newTestHarness(t)

	for _, query := range []string{
		"action=close&open=true&index=1&count=4",
		"action=key&key=Escape&open=true&index=1&count=4",
		"action=key&key=ArrowRight&count=4",
		"action=open&index=9",
	} {
		r := httptest.NewRequest(http.MethodGet, "/gallery/students/lightbox?"+query, nil)
		r.SetPathValue("category", "students")

		w := httptest.NewRecorder()
		h.controller.Lightbox(w, withVisitor(r, "v1"))

		assert.Equal(t, http.StatusOK, w.Code, query)
		assert.Empty(t, w.Body.String(), query)
	}
}

func TestLightboxUnknownCategory(t *testing.T) {
	h := newTestHarness(t)

	r := httptest.NewRequest(http.MethodGet, "/gallery/graduation/lightbox?action=open&index=0", nil)
	r.SetPathValue("category", "graduation")

	w := httptest.NewRecorder()
	h.controller.Lightbox(w, withVisitor(r, "v1"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveLightbox(t *testing.T) {
	opened := ResolveLightbox(LightboxRequest{Action: lightbox.ActionOpen, Index: 11}, 12)
	assert.True(t, opened.Open)
	assert.Equal(t, 11, opened.Index)

	next := ResolveLightbox(LightboxRequest{Action: lightbox.ActionNext, Open: true, Index: 11, Count: 12}, 12)
	assert.Equal(t, 0, next.Index)

	previous := ResolveLightbox(LightboxRequest{Action: lightbox.ActionKey, Key: lightbox.KeyArrowLeft, Open: true, Index: 0, Count: 12}, 12)
	assert.Equal(t, 11, previous.Index)

	closedArrow := ResolveLightbox(LightboxRequest{Action: lightbox.ActionKey, Key: lightbox.KeyArrowRight, Count: 12}, 12)
	assert.False(t, closedArrow.Open)

	shrunk := ResolveLightbox(LightboxRequest{Action: lightbox.ActionNext, Open: true, Index: 3, Count: 4}, 3)
	assert.False(t, shrunk.Open)
}

func TestResolveLightboxRefreshKeepsPosition(t *testing.T) {
	same := ResolveLightbox(LightboxRequest{Open: true, Index: 2, Count: 4}, 4)
	assert.True(t, same.Open)
	assert.Equal(t, 2, same.Index)

	changed := ResolveLightbox(LightboxRequest{Open: true, Index: 2, Count: 4}, 3)
	assert.False(t, changed.Open)
}
