package web

import (
	"slices"
	"strings"
	"time"

	"hawaii_tourism/internal/domain"
)

const DefaultGridLimit = 6

type NavItem struct {
	Label  string
	Href   string
	Active bool
}

type NavSection struct {
	Title string
	Links []NavItem
}

type Header struct {
	Title    string
	Subtitle string
	Nav      []NavItem
}

type Footer struct {
	Title     string
	Subtitle  string
	TechStack []string
	Sections  []NavSection
	Copyright string
	Year      int
}

// Page is what every full page template receives.
type Page struct {
	Title  string
	Header Header
	Footer Footer
	Data   any
}

// Notice types for ErrorMessage. The zero value renders as an error.
const (
	NoticeError   = "error"
	NoticeWarning = "warning"
	NoticeInfo    = "info"
)

// ErrorMessage is the inline notice shown instead of content.
type ErrorMessage struct {
	Message string
	Type    string
}

// NoticeFor picks the notice type for an HTTP status: missing content is
// informational, other client errors warn, everything else is an error.
func NoticeFor(status int) string {
	switch {
	case status == 404:
		return NoticeInfo
	case status >= 400 && status < 500:
		return NoticeWarning
	}
	return NoticeError
}

func (e ErrorMessage) Class() string {
	switch e.Type {
	case NoticeWarning:
		return "notice notice-warning"
	case NoticeInfo:
		return "notice notice-info"
	}
	return "notice notice-error"
}

type FilterButton struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

var activityFilters = []struct{ id, label string }{
	{domain.CategoryAll, "All Activities"},
	{domain.CategoryWater, "Water Activities"},
	{domain.CategoryLand, "Land Activities"},
	{domain.CategoryCultural, "Cultural"},
	{domain.CategoryFood, "Food & Drink"},
}

// ActivityGrid is the filterable activity listing. Cards holds only the
// records that pass the active filter, capped at Limit.
type ActivityGrid struct {
	Filters  []FilterButton
	Active   string
	Cards    []domain.Activity
	Limit    int
	MoreHref string // set when the limit cut the list short
}

// NewActivityGrid narrows activities to the active category and applies the
// limit. An unknown filter behaves like "all". limit <= 0 means the default.
func NewActivityGrid(activities []domain.Activity, active string, limit int, basePath string) ActivityGrid {
	if !knownFilter(active) {
		active = domain.CategoryAll
	}
	if limit <= 0 {
		limit = DefaultGridLimit
	}

	g := ActivityGrid{Active: active, Limit: limit}
	for _, f := range activityFilters {
		g.Filters = append(g.Filters, FilterButton{
			ID:     f.id,
			Label:  f.label,
			Href:   basePath + "?category=" + f.id,
			Active: f.id == active,
		})
	}

	cards := domain.Filter(activities, domain.ActivityFilter{Category: active}.Match)
	if len(cards) > limit {
		cards = cards[:limit]
		g.MoreHref = "/activities?category=" + active
	}
	g.Cards = cards
	return g
}

func knownFilter(id string) bool {
	for _, f := range activityFilters {
		if f.id == id {
			return true
		}
	}
	return false
}

type HomeView struct {
	Destinations []domain.Destination
	Grid         ActivityGrid
	Error        *ErrorMessage
}

type DestinationView struct {
	Destination domain.Destination
	Grid        ActivityGrid
}

type ActivitiesView struct {
	Grid ActivityGrid
}

type ActivityView struct {
	Activity domain.Activity
}

type EventsView struct {
	Events  []domain.Event
	Filters []FilterButton
}

type ErrorView struct {
	Status  int
	Message ErrorMessage
}

// NewEventsView offers "all" plus one button per category present in events
// and keeps only the events in the active one. An unknown category behaves
// like "all".
func NewEventsView(events []domain.Event, active string) EventsView {
	var cats []string
	for _, e := range events {
		c := strings.ToLower(e.Category)
		if c != "" && c != domain.CategoryAll && !slices.Contains(cats, c) {
			cats = append(cats, c)
		}
	}
	slices.Sort(cats)

	active = strings.ToLower(strings.TrimSpace(active))
	if !slices.Contains(cats, active) {
		active = domain.CategoryAll
	}

	v := EventsView{Events: domain.Filter(events, domain.EventFilter{Category: active}.Match)}
	v.Filters = append(v.Filters, FilterButton{
		ID:     domain.CategoryAll,
		Label:  "All Events",
		Href:   "/events?category=" + domain.CategoryAll,
		Active: active == domain.CategoryAll,
	})
	for _, c := range cats {
		v.Filters = append(v.Filters, FilterButton{
			ID:     c,
			Label:  strings.ToUpper(c[:1]) + c[1:],
			Href:   "/events?category=" + c,
			Active: c == active,
		})
	}
	return v
}

// Chrome returns header and footer with the nav item for path marked active.
func Chrome(path string, now time.Time) (Header, Footer) {
	nav := []NavItem{
		{Label: "Islands", Href: "/"},
		{Label: "Activities", Href: "/activities"},
		{Label: "Events", Href: "/events"},
	}
	for i := range nav {
		nav[i].Active = nav[i].Href == path
	}
	h := Header{
		Title:    "Explore Hawaii",
		Subtitle: "Discover paradise with our interactive travel guide",
		Nav:      nav,
	}
	f := Footer{
		Title:     "Explore Hawaii",
		Subtitle:  "Travel & Tourism CMS integration",
		TechStack: []string{"Go", "chi", "Strapi GraphQL", "MySQL", "Redis"},
		Sections: []NavSection{{
			Title: "Islands",
			Links: []NavItem{
				{Label: "Maui", Href: "/destinations/maui"},
				{Label: "Oʻahu", Href: "/destinations/oahu"},
				{Label: "Kauaʻi", Href: "/destinations/kauai"},
			},
		}},
		Copyright: "Content is served from the CMS, or from bundled sample data when it is unavailable.",
		Year:      now.Year(),
	}
	return h, f
}
