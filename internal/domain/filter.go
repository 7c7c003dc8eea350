package domain

import "strings"

type ActivityFilter struct {
	Destination string // destination slug, matched against the activity's city
	Category    string // empty or "all" disables the filter
}

func (f ActivityFilter) Match(a Activity) bool {
	if c := f.category(); c != "" && !strings.EqualFold(a.Category, c) {
		return false
	}
	if f.Destination != "" && Slugify(a.Location.City) != strings.ToLower(f.Destination) {
		return false
	}
	return true
}

// CategoryValue returns the category to send upstream, or "" for no filter.
func (f ActivityFilter) CategoryValue() string { return f.category() }

func (f ActivityFilter) category() string {
	c := strings.ToLower(strings.TrimSpace(f.Category))
	if c == CategoryAll {
		return ""
	}
	return c
}

type EventFilter struct {
	Category string
}

func (f EventFilter) Match(e Event) bool {
	c := f.CategoryValue()
	return c == "" || strings.EqualFold(e.Category, c)
}

// CategoryValue returns the category to send upstream, or "" for no filter.
func (f EventFilter) CategoryValue() string {
	c := strings.ToLower(strings.TrimSpace(f.Category))
	if c == CategoryAll {
		return ""
	}
	return c
}

// Slugify lowercases s and joins alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Filter returns the elements of in for which keep reports true.
func Filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
