package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type FavoritesServicer interface {
	ForVisitor(visitorID string) *FavoriteSet
	Toggle(visitorID, src string) bool
	Forget(visitorID string)
	EvictIdle() int
}

type FavoritesServiceConfig struct {
	Store        FavoritesStore
	FetchTimeout time.Duration
	IdleTimeout  time.Duration
	MaxVisitors  int
	ShutdownCtx  context.Context
}

type visitorFavorites struct {
	set      *FavoriteSet
	lastSeen time.Time
}

/*
FavoritesService owns one favorites set per visitor. Sets live in memory
only and are gone when the process restarts. Visitors idle for longer
than IdleTimeout are dropped by EvictIdle, and the registry never holds
more than MaxVisitors sets; the least recently seen visitor makes room
for a new one.
*/
type FavoritesService struct {
	fetchTimeout time.Duration
	idleTimeout  time.Duration
	maxVisitors  int
	mu           *sync.Mutex
	now          func() time.Time
	sets         map[string]*visitorFavorites
	shutdownCtx  context.Context
	store        FavoritesStore
}

func NewFavoritesService(config FavoritesServiceConfig) FavoritesService {
	if config.Store == nil {
		config.Store = InertFavoritesStore{}
	}

	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 5 * time.Second
	}

	if config.IdleTimeout <= 0 {
		config.IdleTimeout = 24 * time.Hour
	}

	if config.MaxVisitors <= 0 {
		config.MaxVisitors = 10000
	}

	if config.ShutdownCtx == nil {
		config.ShutdownCtx = context.Background()
	}

	return FavoritesService{
		fetchTimeout: config.FetchTimeout,
		idleTimeout:  config.IdleTimeout,
		maxVisitors:  config.MaxVisitors,
		mu:           &sync.Mutex{},
		now:          time.Now,
		sets:         map[string]*visitorFavorites{},
		shutdownCtx:  config.ShutdownCtx,
		store:        config.Store,
	}
}

/*
ForVisitor returns the visitor's set, creating an empty one on first use.
A new set is filled from the favorites store in the background, so the
first page render never waits on it.
*/
func (s FavoritesService) ForVisitor(visitorID string) *FavoriteSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if entry, ok := s.sets[visitorID]; ok {
		entry.lastSeen = now
		return entry.set
	}

	if len(s.sets) >= s.maxVisitors {
		s.evictOldest()
	}

	set := NewFavoriteSet()
	s.sets[visitorID] = &visitorFavorites{set: set, lastSeen: now}

	go s.loadInitial(visitorID, set)

	return set
}

func (s FavoritesService) Toggle(visitorID, src string) bool {
	return s.ForVisitor(visitorID).Toggle(src)
}

func (s FavoritesService) Forget(visitorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forget(visitorID)
}

/*
EvictIdle forgets every visitor not seen within the idle timeout and
returns how many were removed.
*/
func (s FavoritesService) EvictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTimeout)
	evicted := 0

	for visitorID, entry := range s.sets {
		if entry.lastSeen.Before(cutoff) {
			s.forget(visitorID)
			evicted++
		}
	}

	return evicted
}

// Len is the number of visitors currently holding a favorites set.
func (s FavoritesService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sets)
}

// forget and evictOldest expect s.mu to be held.
func (s FavoritesService) forget(visitorID string) {
	delete(s.sets, visitorID)
}

func (s FavoritesService) evictOldest() {
	var (
		oldestID   string
		oldestSeen time.Time
	)

	for visitorID, entry := range s.sets {
		if oldestID == "" || entry.lastSeen.Before(oldestSeen) {
			oldestID = visitorID
			oldestSeen = entry.lastSeen
		}
	}

	if oldestID != "" {
		s.forget(oldestID)
		slog.Debug("favorites registry full. dropped least recent visitor", "visitorID", oldestID)
	}
}

func (s FavoritesService) loadInitial(visitorID string, set *FavoriteSet) {
	var (
		err  error
		urls []string
	)

	ctx, cancel := context.WithTimeout(s.shutdownCtx, s.fetchTimeout)
	defer cancel()

	if urls, err = s.store.Fetch(ctx, visitorID); err != nil {
		slog.Warn("favorites fetch failed. starting with no favorites", "visitorID", visitorID, "error", err)
		return
	}

	set.merge(urls)
	slog.Debug("loaded favorites", "visitorID", visitorID, "count", len(urls))
}
