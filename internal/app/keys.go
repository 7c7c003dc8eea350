package app

import (
	"strings"

	"hawaii_tourism/internal/domain"
)

// Cache keys shared by the read path and the syncer's invalidation. Slugs are
// used verbatim: lookups match them exactly, so the keys must too.

const (
	destinationsKey = "destinations"

	destinationPrefix = "destination:"
	activitiesPrefix  = "activities:"
	activityPrefix    = "activity:"
	eventsPrefix      = "events:"
	eventPrefix       = "event:"
)

func destinationKey(slug string) string { return destinationPrefix + slug }

func activitiesKey(f domain.ActivityFilter) string {
	return activitiesPrefix + strings.ToLower(f.Destination) + ":" + f.CategoryValue()
}

func activityKey(slug string) string { return activityPrefix + slug }

func eventsKey(f domain.EventFilter) string {
	return eventsPrefix + f.CategoryValue()
}

func eventKey(slug string) string { return eventPrefix + slug }
