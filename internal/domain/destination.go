package domain

import "time"

type Destination struct {
	ID               int64      `json:"id" yaml:"id"`
	DocumentID       string     `json:"documentId" yaml:"documentId"`
	Name             string     `json:"name" yaml:"name"`
	Slug             string     `json:"slug" yaml:"slug"`
	Description      string     `json:"description" yaml:"description"`
	ShortDescription string     `json:"shortDescription,omitempty" yaml:"shortDescription"`
	Image            *Media     `json:"image,omitempty" yaml:"image"`
	Gallery          []Media    `json:"gallery,omitempty" yaml:"gallery"`
	Activities       []string   `json:"activities" yaml:"activities"`
	WeatherInfo      string     `json:"weatherInfo,omitempty" yaml:"weatherInfo"`
	TravelTips       string     `json:"travelTips,omitempty" yaml:"travelTips"`
	ImageURL         string     `json:"imageUrl,omitempty" yaml:"imageUrl"`
	Locale           string     `json:"locale,omitempty" yaml:"locale"`
	CreatedAt        *time.Time `json:"createdAt,omitempty" yaml:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt"`
}

// CoverURL prefers the explicit imageUrl, then the attached image.
func (d Destination) CoverURL() string {
	if d.ImageURL != "" {
		return d.ImageURL
	}
	if d.Image != nil {
		return d.Image.URL
	}
	return ""
}
