package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rest"
	"github.com/adampresley/adamgokit/rest/calloptions"
	"github.com/adampresley/adamgokit/rest/clientoptions"
	"github.com/adampresley/adamgokit/slices"
)

var (
	ErrFavoritesUnavailable = fmt.Errorf("favorites fetch skipped (mock mode)")
)

/*
FavoritesStore is where a visitor's initial favorites come from. Fetch
either returns the favorited photo URLs or fails; callers must treat a
failure as "no favorites".
*/
type FavoritesStore interface {
	Fetch(ctx context.Context, visitorID string) ([]string, error)
}

/*
InertFavoritesStore is used when no favorites endpoint is configured.
*/
type InertFavoritesStore struct{}

func (s InertFavoritesStore) Fetch(ctx context.Context, visitorID string) ([]string, error) {
	return nil, ErrFavoritesUnavailable
}

type HttpFavoritesStoreConfig struct {
	Endpoint   string
	HttpClient httphelpers.HttpClient
	Timeout    time.Duration
}

type HttpFavoritesStore struct {
	endpoint   string
	httpClient httphelpers.HttpClient
}

type favoriteResponse struct {
	Photo string `json:"photo"`
}

func NewHttpFavoritesStore(config HttpFavoritesStoreConfig) HttpFavoritesStore {
	client := config.HttpClient

	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	return HttpFavoritesStore{
		endpoint:   config.Endpoint,
		httpClient: client,
	}
}

/*
Fetch calls GET {endpoint}?visitor={visitorID} and expects a JSON array of
objects carrying a "photo" URL. The endpoint must not carry its own query
string.
*/
func (s HttpFavoritesStore) Fetch(ctx context.Context, visitorID string) ([]string, error) {
	var (
		err  error
		body []favoriteResponse
	)

	client := clientoptions.New(
		s.endpoint,
		clientoptions.WithHttpClient(contextClient{ctx: ctx, client: s.httpClient}),
		clientoptions.WithHeaders(map[string]string{"Accept": "application/json"}),
	)

	body, _, err = rest.Get[[]favoriteResponse](
		client,
		"",
		calloptions.WithQueryParams(map[string]string{"visitor": visitorID}),
	)

	if err != nil {
		return nil, fmt.Errorf("error fetching favorites: %w", err)
	}

	return slices.Map(body, func(input favoriteResponse, index int) string {
		return input.Photo
	}), nil
}

/*
contextClient binds every request it sends to ctx, so a cancelled fetch
stops waiting on the endpoint.
*/
type contextClient struct {
	ctx    context.Context
	client httphelpers.HttpClient
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}
