package strapi

// Field sets are fixed per entity. The list query for destinations leaves out
// weatherInfo and travelTips; those only come with the by-slug query.

const destinationsQuery = `
query Destinations {
  destinations(pagination: { limit: 100 }) {
    documentId
    name
    slug
    description
    activities
    shortDescription
    imageUrl
  }
}`

const destinationBySlugQuery = `
query GetDestination($slug: String!) {
  destinations(filters: { slug: { eq: $slug } }) {
    documentId
    name
    slug
    description
    activities
    shortDescription
    weatherInfo
    travelTips
    imageUrl
  }
}`

const activitiesQuery = `
query Activities($filters: ActivityFiltersInput) {
  activities(filters: $filters, pagination: { limit: 100 }) {
    documentId
    title
    slug
    description
    shortDescription
    priceRange
    duration
    category
    location
    bookingInfo
    createdAt
    updatedAt
    publishedAt
  }
}`

const eventsQuery = `
query Events($filters: EventFiltersInput) {
  events(filters: $filters, sort: "date:asc", pagination: { limit: 100 }) {
    documentId
    title
    slug
    description
    date
    location
    category
    url
    imageUrl
    createdAt
    updatedAt
    publishedAt
  }
}`
