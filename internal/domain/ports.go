package domain

import "context"

// ContentSource is anything that can answer content queries: the CMS over
// GraphQL, the MySQL mirror, or the embedded mock fixtures.
type ContentSource interface {
	ListDestinations(ctx context.Context) ([]Destination, error)
	GetDestinationBySlug(ctx context.Context, slug string) (Destination, error)
	ListActivities(ctx context.Context, f ActivityFilter) ([]Activity, error)
	GetActivityBySlug(ctx context.Context, slug string) (Activity, error)
	ListEvents(ctx context.Context, f EventFilter) ([]Event, error)
	GetEventBySlug(ctx context.Context, slug string) (Event, error)
}

// ContentRepository is the write side of the MySQL mirror.
type ContentRepository interface {
	UpsertDestination(ctx context.Context, d Destination) error
	UpsertActivities(ctx context.Context, as []Activity) error
	UpsertEvents(ctx context.Context, es []Event) error
	LogMiss(ctx context.Context, kind, slug string, status int, reason string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	// DelPrefix drops every key starting with prefix.
	DelPrefix(ctx context.Context, prefix string) error
}

// Pagination mirrors the meta block the CMS attaches to collection responses.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}
