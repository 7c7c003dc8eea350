package domain

import "time"

type Activity struct {
	ID               int64      `json:"id" yaml:"id"`
	DocumentID       string     `json:"documentId,omitempty" yaml:"documentId"`
	Title            string     `json:"title" yaml:"title"`
	Slug             string     `json:"slug" yaml:"slug"`
	Description      string     `json:"description" yaml:"description"`
	ShortDescription string     `json:"shortDescription,omitempty" yaml:"shortDescription"`
	FeaturedImage    *Media     `json:"featuredImage,omitempty" yaml:"featuredImage"`
	Gallery          []Media    `json:"gallery,omitempty" yaml:"gallery"`
	PriceRange       string     `json:"priceRange" yaml:"priceRange"`
	Duration         string     `json:"duration" yaml:"duration"`
	Category         string     `json:"category" yaml:"category"`
	Location         Location   `json:"location" yaml:"location"`
	BookingInfo      string     `json:"bookingInfo,omitempty" yaml:"bookingInfo"`
	Locale           string     `json:"locale,omitempty" yaml:"locale"`
	CreatedAt        *time.Time `json:"createdAt,omitempty" yaml:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt"`
}

type Location struct {
	Address     string `json:"address" yaml:"address"`
	City        string `json:"city" yaml:"city"`
	ZipCode     string `json:"zipCode" yaml:"zipCode"`
	Coordinates Coords `json:"coordinates" yaml:"coordinates"`
}

type Coords struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Activity categories offered as filters on the site.
const (
	CategoryAll      = "all"
	CategoryWater    = "water"
	CategoryLand     = "land"
	CategoryCultural = "cultural"
	CategoryFood     = "food"
)
