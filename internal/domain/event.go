package domain

import "time"

type Event struct {
	ID          int64      `json:"id" yaml:"id"`
	DocumentID  string     `json:"documentId,omitempty" yaml:"documentId"`
	Title       string     `json:"title" yaml:"title"`
	Slug        string     `json:"slug" yaml:"slug"`
	Description string     `json:"description" yaml:"description"`
	Date        time.Time  `json:"date" yaml:"date"`
	Location    string     `json:"location" yaml:"location"`
	Image       *Media     `json:"image,omitempty" yaml:"image"`
	Category    string     `json:"category,omitempty" yaml:"category"`
	URL         string     `json:"url,omitempty" yaml:"url"`
	ImageURL    string     `json:"imageUrl,omitempty" yaml:"imageUrl"`
	Locale      string     `json:"locale,omitempty" yaml:"locale"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt"`
}
