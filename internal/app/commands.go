package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"hawaii_tourism/internal/adapters/observability"
	"hawaii_tourism/internal/domain"
)

// SyncService mirrors CMS content into the MySQL repository and evicts the
// read cache for everything it touches.
type SyncService struct {
	cms   domain.ContentSource
	repo  domain.ContentRepository
	cache domain.Cache
}

func NewSyncService(cms domain.ContentSource, r domain.ContentRepository, cache domain.Cache) *SyncService {
	return &SyncService{cms: cms, repo: r, cache: cache}
}

type SyncOptions struct {
	Workers int
	Only    []string // destinations|activities|events; empty means all
}

func (o SyncOptions) wants(kind string) bool {
	if len(o.Only) == 0 {
		return true
	}
	for _, k := range o.Only {
		if k == kind {
			return true
		}
	}
	return false
}

type SyncReport struct {
	Destinations int
	Activities   int
	Events       int
	Misses       int
	Failures     int
}

type syncCounters struct {
	destinations, activities, events, misses, failures atomic.Int64
}

func (c *syncCounters) report() SyncReport {
	return SyncReport{
		Destinations: int(c.destinations.Load()),
		Activities:   int(c.activities.Load()),
		Events:       int(c.events.Load()),
		Misses:       int(c.misses.Load()),
		Failures:     int(c.failures.Load()),
	}
}

// Run syncs the requested content kinds concurrently. Per-destination
// failures are counted and logged; failing to list a kind aborts the run.
func (s *SyncService) Run(ctx context.Context, opt SyncOptions) (SyncReport, error) {
	var c syncCounters
	g, gctx := errgroup.WithContext(ctx)

	if opt.wants("destinations") {
		g.Go(func() error { return s.syncDestinations(gctx, opt.Workers, &c) })
	}
	if opt.wants("activities") {
		g.Go(func() error {
			n, miss, err := s.SyncActivities(gctx)
			c.activities.Add(int64(n))
			c.misses.Add(int64(miss))
			return err
		})
	}
	if opt.wants("events") {
		g.Go(func() error {
			n, miss, err := s.SyncEvents(gctx)
			c.events.Add(int64(n))
			c.misses.Add(int64(miss))
			return err
		})
	}

	err := g.Wait()
	return c.report(), err
}

func (s *SyncService) syncDestinations(ctx context.Context, workers int, c *syncCounters) error {
	if workers <= 0 {
		workers = 1
	}
	list, err := s.cms.ListDestinations(ctx)
	if err != nil {
		return fmt.Errorf("list destinations: %w", err)
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	for _, d := range list {
		if d.Slug == "" {
			s.logMiss(ctx, "destination", d.DocumentID, 422, "missing slug")
			c.misses.Add(1)
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(slug string) {
			defer wg.Done()
			defer sem.Release(1)

			stored, err := s.SyncDestination(ctx, slug)
			switch {
			case err != nil:
				log.Warn().Str("slug", slug).Err(err).Msg("destination sync failed")
				c.failures.Add(1)
			case stored:
				c.destinations.Add(1)
			default:
				c.misses.Add(1)
			}
		}(d.Slug)
	}
	wg.Wait()

	// the prefix also drops destinations that disappeared from the CMS
	s.evict(ctx, destinationsKey)
	s.evictPrefix(ctx, destinationPrefix)
	return nil
}

// SyncDestination fetches one destination with its detail fields and upserts
// it. Not-found and auth failures are recorded as misses and reported as
// stored=false with a nil error.
func (s *SyncService) SyncDestination(ctx context.Context, slug string) (bool, error) {
	d, err := s.cms.GetDestinationBySlug(ctx, slug)
	if err != nil {
		if status, ok := missStatus(err); ok {
			s.logMiss(ctx, "destination", slug, status, err.Error())
			s.evict(ctx, destinationKey(slug))
			observability.ObserveSync("destination", "miss")
			return false, nil
		}
		observability.ObserveSync("destination", "error")
		return false, err
	}
	if err := s.repo.UpsertDestination(ctx, d); err != nil {
		observability.ObserveSync("destination", "error")
		return false, fmt.Errorf("upsert destination %q: %w", slug, err)
	}
	s.evict(ctx, destinationKey(slug))
	observability.ObserveSync("destination", "ok")
	return true, nil
}

// SyncActivities mirrors every activity and evicts every cached activity list
// and record, so lists for a category or city an activity left go too.
// Returns stored and missed counts.
func (s *SyncService) SyncActivities(ctx context.Context) (int, int, error) {
	all, err := s.cms.ListActivities(ctx, domain.ActivityFilter{})
	if err != nil {
		return 0, 0, fmt.Errorf("list activities: %w", err)
	}
	keep := make([]domain.Activity, 0, len(all))
	missed := 0
	for _, a := range all {
		if a.Slug == "" {
			s.logMiss(ctx, "activity", a.DocumentID, 422, "missing slug")
			observability.ObserveSync("activity", "miss")
			missed++
			continue
		}
		keep = append(keep, a)
	}
	if err := s.repo.UpsertActivities(ctx, keep); err != nil {
		return 0, missed, fmt.Errorf("upsert activities: %w", err)
	}
	s.evictPrefix(ctx, activitiesPrefix)
	s.evictPrefix(ctx, activityPrefix)
	for range keep {
		observability.ObserveSync("activity", "ok")
	}
	return len(keep), missed, nil
}

// SyncEvents mirrors every event and evicts every cached event list and
// record. Returns stored and missed counts.
func (s *SyncService) SyncEvents(ctx context.Context) (int, int, error) {
	all, err := s.cms.ListEvents(ctx, domain.EventFilter{})
	if err != nil {
		return 0, 0, fmt.Errorf("list events: %w", err)
	}
	keep := make([]domain.Event, 0, len(all))
	missed := 0
	for _, e := range all {
		if e.Slug == "" {
			s.logMiss(ctx, "event", e.DocumentID, 422, "missing slug")
			observability.ObserveSync("event", "miss")
			missed++
			continue
		}
		keep = append(keep, e)
	}
	if err := s.repo.UpsertEvents(ctx, keep); err != nil {
		return 0, missed, fmt.Errorf("upsert events: %w", err)
	}
	s.evictPrefix(ctx, eventsPrefix)
	s.evictPrefix(ctx, eventPrefix)
	for range keep {
		observability.ObserveSync("event", "ok")
	}
	return len(keep), missed, nil
}

// missStatus maps the errors that mean "skip this record" to an HTTP-ish status.
func missStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return 404, true
	case errors.Is(err, domain.ErrUnauthorized):
		return 401, true
	case errors.Is(err, domain.ErrForbidden):
		return 403, true
	}
	return 0, false
}

func (s *SyncService) logMiss(ctx context.Context, kind, slug string, status int, reason string) {
	if err := s.repo.LogMiss(ctx, kind, slug, status, reason); err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("slug", slug).Msg("record sync miss failed")
	}
}

func (s *SyncService) evict(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache eviction failed")
	}
}

func (s *SyncService) evictPrefix(ctx context.Context, prefix string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DelPrefix(ctx, prefix); err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("cache eviction failed")
	}
}
