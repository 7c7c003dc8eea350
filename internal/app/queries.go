package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"hawaii_tourism/internal/adapters/observability"
	"hawaii_tourism/internal/domain"
)

// ContentService answers content queries from the live source and falls back
// to the mock source once when the live call fails. In mock mode the live
// source is never touched.
type ContentService struct {
	live     domain.ContentSource
	mock     domain.ContentSource
	cache    domain.Cache
	cacheTTL time.Duration
	mockMode bool
}

// NewContentService wires the service. live and cache may be nil; a nil live
// source behaves like mock mode.
func NewContentService(live, mock domain.ContentSource, c domain.Cache, ttl time.Duration, mockMode bool) *ContentService {
	return &ContentService{live: live, mock: mock, cache: c, cacheTTL: ttl, mockMode: mockMode}
}

func (s *ContentService) MockMode() bool { return s.mockMode || s.live == nil }

func (s *ContentService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return fetchList(ctx, s, "destination", destinationsKey,
		func(ctx context.Context) ([]domain.Destination, error) { return s.live.ListDestinations(ctx) },
		func(ctx context.Context) ([]domain.Destination, error) { return s.mock.ListDestinations(ctx) },
		func(domain.Destination) bool { return true },
	)
}

func (s *ContentService) GetDestination(ctx context.Context, slug string) (domain.Destination, error) {
	return fetchOne(ctx, s, "destination", slug, destinationKey(slug),
		func(ctx context.Context) (domain.Destination, error) { return s.live.GetDestinationBySlug(ctx, slug) },
		func(ctx context.Context) ([]domain.Destination, error) { return s.mock.ListDestinations(ctx) },
		func(d domain.Destination) bool { return d.Slug == slug },
	)
}

func (s *ContentService) ListActivities(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	return fetchList(ctx, s, "activity", activitiesKey(f),
		func(ctx context.Context) ([]domain.Activity, error) { return s.live.ListActivities(ctx, f) },
		func(ctx context.Context) ([]domain.Activity, error) { return s.mock.ListActivities(ctx, f) },
		f.Match,
	)
}

func (s *ContentService) GetActivity(ctx context.Context, slug string) (domain.Activity, error) {
	return fetchOne(ctx, s, "activity", slug, activityKey(slug),
		func(ctx context.Context) (domain.Activity, error) { return s.live.GetActivityBySlug(ctx, slug) },
		func(ctx context.Context) ([]domain.Activity, error) {
			return s.mock.ListActivities(ctx, domain.ActivityFilter{})
		},
		func(a domain.Activity) bool { return a.Slug == slug },
	)
}

func (s *ContentService) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	return fetchList(ctx, s, "event", eventsKey(f),
		func(ctx context.Context) ([]domain.Event, error) { return s.live.ListEvents(ctx, f) },
		func(ctx context.Context) ([]domain.Event, error) { return s.mock.ListEvents(ctx, f) },
		f.Match,
	)
}

func (s *ContentService) GetEvent(ctx context.Context, slug string) (domain.Event, error) {
	return fetchOne(ctx, s, "event", slug, eventKey(slug),
		func(ctx context.Context) (domain.Event, error) { return s.live.GetEventBySlug(ctx, slug) },
		func(ctx context.Context) ([]domain.Event, error) { return s.mock.ListEvents(ctx, domain.EventFilter{}) },
		func(e domain.Event) bool { return e.Slug == slug },
	)
}

// fetchList never fails because of the live source: any live error degrades
// to the mock collection narrowed by keep.
func fetchList[T any](
	ctx context.Context, s *ContentService, kind, key string,
	live, mock func(context.Context) ([]T, error),
	keep func(T) bool,
) ([]T, error) {
	if s.MockMode() {
		log.Debug().Str("kind", kind).Msg("using mock data")
		observability.ObserveFallback(kind, "mock_mode")
		items, err := mock(ctx)
		if err != nil {
			return nil, err
		}
		noteOrigin(ctx, OriginMock)
		return domain.Filter(items, keep), nil
	}

	var cached []T
	if s.cacheGet(ctx, key, &cached) {
		noteOrigin(ctx, OriginLive)
		return domain.Filter(cached, keep), nil
	}

	items, err := live(ctx)
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("error_type", observability.LabelErr(err)).Msg("live fetch failed, falling back to mock data")
		observability.ObserveFallback(kind, "live_error")
		items, err = mock(ctx)
		if err != nil {
			return nil, err
		}
		noteOrigin(ctx, OriginMock)
		return domain.Filter(items, keep), nil
	}

	items = domain.Filter(items, keep)
	s.cacheSet(ctx, key, items)
	noteOrigin(ctx, OriginLive)
	return items, nil
}

// fetchOne looks a single record up live and, on any failure including
// not-found, searches the mock collection with match. Only a miss in both
// is reported, as a *domain.NotFoundError.
func fetchOne[T any](
	ctx context.Context, s *ContentService, kind, slug, key string,
	live func(context.Context) (T, error),
	mockList func(context.Context) ([]T, error),
	match func(T) bool,
) (T, error) {
	var zero T
	fromMock := func() (T, error) {
		items, err := mockList(ctx)
		if err != nil {
			return zero, err
		}
		for _, it := range items {
			if match(it) {
				noteOrigin(ctx, OriginMock)
				return it, nil
			}
		}
		return zero, &domain.NotFoundError{Kind: kind, Slug: slug}
	}

	if s.MockMode() {
		log.Debug().Str("kind", kind).Str("slug", slug).Msg("using mock data")
		observability.ObserveFallback(kind, "mock_mode")
		return fromMock()
	}

	var cached T
	if s.cacheGet(ctx, key, &cached) {
		noteOrigin(ctx, OriginLive)
		return cached, nil
	}

	v, err := live(ctx)
	if err != nil {
		reason := "live_error"
		if errors.Is(err, domain.ErrNotFound) {
			reason = "live_not_found"
		}
		log.Warn().Err(err).Str("kind", kind).Str("slug", slug).Str("error_type", observability.LabelErr(err)).Msg("live lookup failed, falling back to mock data")
		observability.ObserveFallback(kind, reason)

		v, err = fromMock()
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Info().Str("kind", kind).Str("slug", slug).Msg("not found in mock data either")
			}
			return zero, err
		}
		return v, nil
	}

	s.cacheSet(ctx, key, v)
	noteOrigin(ctx, OriginLive)
	return v, nil
}

func (s *ContentService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

// cacheSet stores live results only; mock data is never cached.
func (s *ContentService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}
