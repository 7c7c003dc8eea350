package mysql

const upsertDestinationSQL = `
INSERT INTO destinations
  (id, document_id, slug, name, description, short_description, image, gallery, activities,
   weather_info, travel_tips, image_url, locale, created_at, updated_at, published_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  document_id       = VALUES(document_id),
  id                = VALUES(id),
  name              = VALUES(name),
  description       = VALUES(description),
  short_description = VALUES(short_description),
  image             = VALUES(image),
  gallery           = VALUES(gallery),
  activities        = VALUES(activities),
  weather_info      = COALESCE(VALUES(weather_info), destinations.weather_info),
  travel_tips       = COALESCE(VALUES(travel_tips), destinations.travel_tips),
  image_url         = VALUES(image_url),
  locale            = VALUES(locale),
  created_at        = VALUES(created_at),
  updated_at        = VALUES(updated_at),
  published_at      = VALUES(published_at)
`

const insertActivitiesPrefix = "INSERT INTO activities\n" +
	"  (id, document_id, slug, title, description, short_description, featured_image, gallery,\n" +
	"   price_range, duration, category, city, location, booking_info, locale, created_at, updated_at, published_at)\n" +
	"VALUES "

const insertActivitiesOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  document_id       = VALUES(document_id),\n" +
	"  id                = VALUES(id),\n" +
	"  title             = VALUES(title),\n" +
	"  description       = VALUES(description),\n" +
	"  short_description = VALUES(short_description),\n" +
	"  featured_image    = VALUES(featured_image),\n" +
	"  gallery           = VALUES(gallery),\n" +
	"  price_range       = VALUES(price_range),\n" +
	"  duration          = VALUES(duration),\n" +
	"  category          = VALUES(category),\n" +
	"  city              = VALUES(city),\n" +
	"  location          = VALUES(location),\n" +
	"  booking_info      = VALUES(booking_info),\n" +
	"  locale            = VALUES(locale),\n" +
	"  created_at        = VALUES(created_at),\n" +
	"  updated_at        = VALUES(updated_at),\n" +
	"  published_at      = VALUES(published_at)\n"

const insertEventsPrefix = "INSERT INTO events\n" +
	"  (id, document_id, slug, title, description, event_date, location, image, category, url,\n" +
	"   image_url, locale, created_at, updated_at, published_at)\n" +
	"VALUES "

const insertEventsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  document_id  = VALUES(document_id),\n" +
	"  id           = VALUES(id),\n" +
	"  title        = VALUES(title),\n" +
	"  description  = VALUES(description),\n" +
	"  event_date   = VALUES(event_date),\n" +
	"  location     = VALUES(location),\n" +
	"  image        = VALUES(image),\n" +
	"  category     = VALUES(category),\n" +
	"  url          = VALUES(url),\n" +
	"  image_url    = VALUES(image_url),\n" +
	"  locale       = VALUES(locale),\n" +
	"  created_at   = VALUES(created_at),\n" +
	"  updated_at   = VALUES(updated_at),\n" +
	"  published_at = VALUES(published_at)\n"

const insertMissSQL = `
INSERT INTO sync_misses (kind, slug, http_status, reason)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const destinationColumns = `
SELECT id, document_id, slug, name, description, short_description, image, gallery, activities,
       weather_info, travel_tips, image_url, locale, created_at, updated_at, published_at
FROM destinations`

const listDestinationsSQL = destinationColumns + ` ORDER BY name`

const getDestinationSQL = destinationColumns + ` WHERE slug = ?`

const activityColumns = `
SELECT id, document_id, slug, title, description, short_description, featured_image, gallery,
       price_range, duration, category, location, booking_info, locale, created_at, updated_at, published_at
FROM activities`

// A NULL category argument disables the filter.
const listActivitiesSQL = activityColumns + ` WHERE (? IS NULL OR category = ?) ORDER BY title`

const getActivitySQL = activityColumns + ` WHERE slug = ?`

const eventColumns = `
SELECT id, document_id, slug, title, description, event_date, location, image, category, url,
       image_url, locale, created_at, updated_at, published_at
FROM events`

const listEventsSQL = eventColumns + ` WHERE (? IS NULL OR category = ?) ORDER BY event_date`

const getEventSQL = eventColumns + ` WHERE slug = ?`
