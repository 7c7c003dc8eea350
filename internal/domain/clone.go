package domain

import (
	"maps"
	"slices"
	"time"
)

// Clone returns a copy that shares no pointers, slices or maps with m.
func (m *Media) Clone() *Media {
	if m == nil {
		return nil
	}
	c := *m
	c.Formats = maps.Clone(m.Formats)
	return &c
}

func cloneGallery(in []Media) []Media {
	if in == nil {
		return nil
	}
	out := make([]Media, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (d Destination) Clone() Destination {
	d.Image = d.Image.Clone()
	d.Gallery = cloneGallery(d.Gallery)
	d.Activities = slices.Clone(d.Activities)
	d.CreatedAt, d.UpdatedAt, d.PublishedAt = cloneTime(d.CreatedAt), cloneTime(d.UpdatedAt), cloneTime(d.PublishedAt)
	return d
}

func (a Activity) Clone() Activity {
	a.FeaturedImage = a.FeaturedImage.Clone()
	a.Gallery = cloneGallery(a.Gallery)
	a.CreatedAt, a.UpdatedAt, a.PublishedAt = cloneTime(a.CreatedAt), cloneTime(a.UpdatedAt), cloneTime(a.PublishedAt)
	return a
}

func (e Event) Clone() Event {
	e.Image = e.Image.Clone()
	e.CreatedAt, e.UpdatedAt, e.PublishedAt = cloneTime(e.CreatedAt), cloneTime(e.UpdatedAt), cloneTime(e.PublishedAt)
	return e
}
