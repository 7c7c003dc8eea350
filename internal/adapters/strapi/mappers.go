package strapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hawaii_tourism/internal/domain"
)

/********** alias registries **********/

// Strapi v5 returns flat documents; v4 nests fields under "attributes" and
// media under "data.attributes". Every path is tried in order.

var destinationAliases = map[string][]string{
	"documentId":       {"documentId", "attributes.documentId"},
	"name":             {"name", "attributes.name"},
	"slug":             {"slug", "attributes.slug"},
	"description":      {"description", "attributes.description"},
	"shortDescription": {"shortDescription", "attributes.shortDescription"},
	"weatherInfo":      {"weatherInfo", "attributes.weatherInfo"},
	"travelTips":       {"travelTips", "attributes.travelTips"},
	"imageUrl":         {"imageUrl", "attributes.imageUrl", "image.url", "image.data.attributes.url", "attributes.image.data.attributes.url"},
	"image":            {"image", "attributes.image"},
	"gallery":          {"gallery", "attributes.gallery"},
	"activities":       {"activities", "attributes.activities"},
}

var activityAliases = map[string][]string{
	"documentId":       {"documentId", "attributes.documentId"},
	"title":            {"title", "attributes.title"},
	"slug":             {"slug", "attributes.slug"},
	"description":      {"description", "attributes.description"},
	"shortDescription": {"shortDescription", "attributes.shortDescription"},
	"priceRange":       {"priceRange", "attributes.priceRange"},
	"duration":         {"duration", "attributes.duration"},
	"category":         {"category", "attributes.category"},
	"bookingInfo":      {"bookingInfo", "attributes.bookingInfo"},
	"location":         {"location", "attributes.location"},
	"featuredImage":    {"featuredImage", "attributes.featuredImage"},
	"gallery":          {"gallery", "attributes.gallery"},
}

var eventAliases = map[string][]string{
	"documentId":  {"documentId", "attributes.documentId"},
	"title":       {"title", "attributes.title"},
	"slug":        {"slug", "attributes.slug"},
	"description": {"description", "attributes.description"},
	"date":        {"date", "attributes.date"},
	"location":    {"location", "attributes.location"},
	"category":    {"category", "attributes.category"},
	"url":         {"url", "attributes.url"},
	"imageUrl":    {"imageUrl", "attributes.imageUrl", "image.url", "image.data.attributes.url", "attributes.image.data.attributes.url"},
	"image":       {"image", "attributes.image"},
}

var commonAliases = map[string][]string{
	"locale":      {"locale", "attributes.locale"},
	"createdAt":   {"createdAt", "attributes.createdAt"},
	"updatedAt":   {"updatedAt", "attributes.updatedAt"},
	"publishedAt": {"publishedAt", "attributes.publishedAt"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstAlias returns the first non-nil value for a named alias set.
func firstAlias(m map[string]any, aliases map[string][]string, key string) any {
	for _, p := range aliases[key] {
		if v := lookupAny(m, p); v != nil {
			return v
		}
	}
	return nil
}

// text resolves an alias to a string. Rich-text block JSON is flattened to
// its plain text.
func text(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := richText(lookupAny(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// richText accepts a string or the blocks editor format:
// [{type:"paragraph", children:[{type:"text", text:"..."}]}].
func richText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		var paras []string
		for _, blk := range t {
			if s := richText(blk); s != "" {
				paras = append(paras, s)
			}
		}
		return strings.Join(paras, "\n\n")
	case map[string]any:
		if s, ok := t["text"].(string); ok {
			return s
		}
		if kids, ok := t["children"].([]any); ok {
			var b strings.Builder
			for _, k := range kids {
				b.WriteString(richText(k))
			}
			return strings.TrimSpace(b.String())
		}
	}
	return ""
}

// int64Flexible: int64 from float64/int/string (ids come back as strings in v5).
func int64Flexible(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func intFlexible(v any) int { return int(int64Flexible(v)) }

func floatFlexible(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// timeFlexible parses RFC3339 timestamps and plain dates.
func timeFlexible(v any) *time.Time {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	log.Debug().Str("value", s).Msg("unparseable timestamp from CMS")
	return nil
}

// stringSlice accepts []any of strings or of {name|title|slug} objects.
func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		switch t := it.(type) {
		case string:
			if t != "" {
				out = append(out, t)
			}
		case map[string]any:
			for _, k := range []string{"name", "title", "slug"} {
				if s, ok := t[k].(string); ok && s != "" {
					out = append(out, s)
					break
				}
			}
		}
	}
	return out
}

/********** media **********/

// mapMedia accepts a flat upload ({url,...}) or the v4 {data:{id,attributes}} wrapper.
func mapMedia(v any) *domain.Media {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := m["data"]; ok {
		dm, ok := data.(map[string]any)
		if !ok {
			return nil // {data: null}
		}
		attrs, _ := dm["attributes"].(map[string]any)
		if attrs == nil {
			return nil
		}
		md := mapMedia(attrs)
		if md != nil {
			md.ID = int64Flexible(dm["id"])
		}
		return md
	}
	url, _ := m["url"].(string)
	if url == "" {
		return nil
	}
	md := &domain.Media{
		ID:              int64Flexible(m["id"]),
		Name:            richText(m["name"]),
		AlternativeText: richText(m["alternativeText"]),
		Caption:         richText(m["caption"]),
		Width:           intFlexible(m["width"]),
		Height:          intFlexible(m["height"]),
		URL:             url,
		Provider:        richText(m["provider"]),
	}
	if fm, ok := m["formats"].(map[string]any); ok {
		md.Formats = make(map[string]domain.MediaFormat, len(fm))
		for name, f := range fm {
			ff, ok := f.(map[string]any)
			if !ok {
				continue
			}
			u, _ := ff["url"].(string)
			md.Formats[name] = domain.MediaFormat{URL: u, Width: intFlexible(ff["width"]), Height: intFlexible(ff["height"])}
		}
	}
	return md
}

// mapGallery accepts []upload or {data:[...]}.
func mapGallery(v any) []domain.Media {
	if m, ok := v.(map[string]any); ok {
		v = m["data"]
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Media, 0, len(raw))
	for _, it := range raw {
		if md := mapMedia(wrapData(it)); md != nil {
			out = append(out, *md)
		}
	}
	return out
}

// wrapData lets gallery entries in v4 form ({id, attributes}) reuse mapMedia.
func wrapData(v any) any {
	if m, ok := v.(map[string]any); ok {
		if _, ok := m["attributes"]; ok {
			return map[string]any{"data": m}
		}
	}
	return v
}

/********** entity mappers **********/

func mapAll[T any](in []map[string]any, f func(map[string]any) T) []T {
	out := make([]T, 0, len(in))
	for _, m := range in {
		out = append(out, f(m))
	}
	return out
}

func mapDestination(p map[string]any) domain.Destination {
	d := domain.Destination{
		ID:               int64Flexible(p["id"]),
		DocumentID:       text(p, destinationAliases, "documentId"),
		Name:             text(p, destinationAliases, "name"),
		Slug:             text(p, destinationAliases, "slug"),
		Description:      text(p, destinationAliases, "description"),
		ShortDescription: text(p, destinationAliases, "shortDescription"),
		Image:            mapMedia(firstAlias(p, destinationAliases, "image")),
		Gallery:          mapGallery(firstAlias(p, destinationAliases, "gallery")),
		Activities:       stringSlice(firstAlias(p, destinationAliases, "activities")),
		WeatherInfo:      text(p, destinationAliases, "weatherInfo"),
		TravelTips:       text(p, destinationAliases, "travelTips"),
		ImageURL:         text(p, destinationAliases, "imageUrl"),
		Locale:           text(p, commonAliases, "locale"),
		CreatedAt:        timeFlexible(firstAlias(p, commonAliases, "createdAt")),
		UpdatedAt:        timeFlexible(firstAlias(p, commonAliases, "updatedAt")),
		PublishedAt:      timeFlexible(firstAlias(p, commonAliases, "publishedAt")),
	}
	if d.ID == 0 {
		d.ID = int64Flexible(d.DocumentID)
	}
	if d.Activities == nil {
		d.Activities = []string{}
	}
	return d
}

func mapActivity(p map[string]any) domain.Activity {
	a := domain.Activity{
		ID:               int64Flexible(p["id"]),
		DocumentID:       text(p, activityAliases, "documentId"),
		Title:            text(p, activityAliases, "title"),
		Slug:             text(p, activityAliases, "slug"),
		Description:      text(p, activityAliases, "description"),
		ShortDescription: text(p, activityAliases, "shortDescription"),
		FeaturedImage:    mapMedia(firstAlias(p, activityAliases, "featuredImage")),
		Gallery:          mapGallery(firstAlias(p, activityAliases, "gallery")),
		PriceRange:       text(p, activityAliases, "priceRange"),
		Duration:         text(p, activityAliases, "duration"),
		Category:         strings.ToLower(text(p, activityAliases, "category")),
		BookingInfo:      text(p, activityAliases, "bookingInfo"),
		Locale:           text(p, commonAliases, "locale"),
		CreatedAt:        timeFlexible(firstAlias(p, commonAliases, "createdAt")),
		UpdatedAt:        timeFlexible(firstAlias(p, commonAliases, "updatedAt")),
		PublishedAt:      timeFlexible(firstAlias(p, commonAliases, "publishedAt")),
	}
	if a.ID == 0 {
		a.ID = int64Flexible(a.DocumentID)
	}
	if loc, ok := firstAlias(p, activityAliases, "location").(map[string]any); ok {
		a.Location = domain.Location{
			Address: richText(loc["address"]),
			City:    richText(loc["city"]),
			ZipCode: richText(loc["zipCode"]),
			Coordinates: domain.Coords{
				Lat: floatFlexible(lookupAny(loc, "coordinates.lat")),
				Lng: floatFlexible(lookupAny(loc, "coordinates.lng")),
			},
		}
	}
	return a
}

func mapEvent(p map[string]any) domain.Event {
	e := domain.Event{
		ID:          int64Flexible(p["id"]),
		DocumentID:  text(p, eventAliases, "documentId"),
		Title:       text(p, eventAliases, "title"),
		Slug:        text(p, eventAliases, "slug"),
		Description: text(p, eventAliases, "description"),
		Location:    text(p, eventAliases, "location"),
		Image:       mapMedia(firstAlias(p, eventAliases, "image")),
		Category:    strings.ToLower(text(p, eventAliases, "category")),
		URL:         text(p, eventAliases, "url"),
		ImageURL:    text(p, eventAliases, "imageUrl"),
		Locale:      text(p, commonAliases, "locale"),
		CreatedAt:   timeFlexible(firstAlias(p, commonAliases, "createdAt")),
		UpdatedAt:   timeFlexible(firstAlias(p, commonAliases, "updatedAt")),
		PublishedAt: timeFlexible(firstAlias(p, commonAliases, "publishedAt")),
	}
	if e.ID == 0 {
		e.ID = int64Flexible(e.DocumentID)
	}
	if t := timeFlexible(firstAlias(p, eventAliases, "date")); t != nil {
		e.Date = *t
	}
	return e
}
