// Package mockdata serves the fixed placeholder collections used in mock
// mode and as the fallback when the live content source fails.
package mockdata

import (
	"context"
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"hawaii_tourism/internal/domain"
)

//go:embed data/*.yaml
var files embed.FS

// Source implements domain.ContentSource over the embedded fixtures.
// Every call waits for the configured delay to imitate a network round trip.
type Source struct {
	delay        time.Duration
	destinations []domain.Destination
	activities   []domain.Activity
	events       []domain.Event
}

func New(delay time.Duration) (*Source, error) {
	s := &Source{delay: delay}
	if err := load("data/destinations.yaml", &s.destinations); err != nil {
		return nil, err
	}
	if err := load("data/activities.yaml", &s.activities); err != nil {
		return nil, err
	}
	if err := load("data/events.yaml", &s.events); err != nil {
		return nil, err
	}
	return s, nil
}

func load(name string, dst any) error {
	b, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Source) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return clone(s.destinations, domain.Destination.Clone), nil
}

func (s *Source) GetDestinationBySlug(ctx context.Context, slug string) (domain.Destination, error) {
	ds, err := s.ListDestinations(ctx)
	if err != nil {
		return domain.Destination{}, err
	}
	for _, d := range ds {
		if d.Slug == slug {
			return d, nil
		}
	}
	return domain.Destination{}, &domain.NotFoundError{Kind: "destination", Slug: slug}
}

func (s *Source) ListActivities(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return clone(domain.Filter(s.activities, f.Match), domain.Activity.Clone), nil
}

func (s *Source) GetActivityBySlug(ctx context.Context, slug string) (domain.Activity, error) {
	as, err := s.ListActivities(ctx, domain.ActivityFilter{})
	if err != nil {
		return domain.Activity{}, err
	}
	for _, a := range as {
		if a.Slug == slug {
			return a, nil
		}
	}
	return domain.Activity{}, &domain.NotFoundError{Kind: "activity", Slug: slug}
}

func (s *Source) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return clone(domain.Filter(s.events, f.Match), domain.Event.Clone), nil
}

func (s *Source) GetEventBySlug(ctx context.Context, slug string) (domain.Event, error) {
	es, err := s.ListEvents(ctx, domain.EventFilter{})
	if err != nil {
		return domain.Event{}, err
	}
	for _, e := range es {
		if e.Slug == slug {
			return e, nil
		}
	}
	return domain.Event{}, &domain.NotFoundError{Kind: "event", Slug: slug}
}

func (s *Source) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// clone deep-copies every record so callers cannot reach the fixtures.
func clone[T any](in []T, cp func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = cp(v)
	}
	return out
}
