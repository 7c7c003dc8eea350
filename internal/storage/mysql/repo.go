package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hawaii_tourism/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valTime(p *time.Time) any {
	if p == nil || p.IsZero() {
		return nil
	}
	return p.UTC()
}
func valJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

// Repo is the MySQL content mirror. It is written by the syncer and can be
// read as a live source.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- writes ----

func (r *Repo) UpsertDestination(ctx context.Context, d domain.Destination) error {
	img, err := valJSON(d.Image)
	if err != nil {
		return err
	}
	gal, err := valJSON(d.Gallery)
	if err != nil {
		return err
	}
	acts, err := valJSON(d.Activities)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertDestinationSQL,
		d.ID,
		valStr(d.DocumentID),
		d.Slug,
		d.Name,
		valStr(d.Description),
		valStr(d.ShortDescription),
		img, gal, acts,
		valStr(d.WeatherInfo),
		valStr(d.TravelTips),
		valStr(d.ImageURL),
		valStr(d.Locale),
		valTime(d.CreatedAt), valTime(d.UpdatedAt), valTime(d.PublishedAt),
	)
	return err
}

func (r *Repo) UpsertActivities(ctx context.Context, as []domain.Activity) error {
	if len(as) == 0 {
		return nil
	}
	values := make([]string, 0, len(as))
	args := make([]any, 0, len(as)*18) // 18 params per row
	for _, a := range as {
		img, err := valJSON(a.FeaturedImage)
		if err != nil {
			return err
		}
		gal, err := valJSON(a.Gallery)
		if err != nil {
			return err
		}
		loc, err := valJSON(a.Location)
		if err != nil {
			return err
		}
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			a.ID,
			valStr(a.DocumentID),
			a.Slug,
			a.Title,
			valStr(a.Description),
			valStr(a.ShortDescription),
			img, gal,
			valStr(a.PriceRange),
			valStr(a.Duration),
			valStr(strings.ToLower(a.Category)),
			valStr(a.Location.City), // denormalised for filtering
			loc,
			valStr(a.BookingInfo),
			valStr(a.Locale),
			valTime(a.CreatedAt), valTime(a.UpdatedAt), valTime(a.PublishedAt),
		)
	}
	sqlStr := insertActivitiesPrefix + strings.Join(values, ",") + insertActivitiesOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) UpsertEvents(ctx context.Context, es []domain.Event) error {
	if len(es) == 0 {
		return nil
	}
	values := make([]string, 0, len(es))
	args := make([]any, 0, len(es)*15)
	for _, e := range es {
		img, err := valJSON(e.Image)
		if err != nil {
			return err
		}
		date := e.Date
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			e.ID,
			valStr(e.DocumentID),
			e.Slug,
			e.Title,
			valStr(e.Description),
			valTime(&date),
			valStr(e.Location),
			img,
			valStr(strings.ToLower(e.Category)),
			valStr(e.URL),
			valStr(e.ImageURL),
			valStr(e.Locale),
			valTime(e.CreatedAt), valTime(e.UpdatedAt), valTime(e.PublishedAt),
		)
	}
	sqlStr := insertEventsPrefix + strings.Join(values, ",") + insertEventsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, kind, slug string, status int, reason string) error {
	if len(reason) > 512 {
		reason = reason[:512]
	}
	_, err := r.db.ExecContext(ctx, insertMissSQL, kind, slug, status, reason)
	return err
}

// ---- reads ----

type scanner interface{ Scan(dest ...any) error }

func scanDestination(s scanner) (domain.Destination, error) {
	var d domain.Destination
	var (
		docID, desc, short, weather, tips, imgURL, locale sql.NullString
		img, gal, acts                                    []byte
		created, updated, published                       sql.NullTime
	)
	if err := s.Scan(
		&d.ID, &docID, &d.Slug, &d.Name, &desc, &short,
		&img, &gal, &acts,
		&weather, &tips, &imgURL, &locale,
		&created, &updated, &published,
	); err != nil {
		return domain.Destination{}, err
	}
	d.DocumentID, d.Description, d.ShortDescription = docID.String, desc.String, short.String
	d.WeatherInfo, d.TravelTips, d.ImageURL, d.Locale = weather.String, tips.String, imgURL.String, locale.String
	d.CreatedAt, d.UpdatedAt, d.PublishedAt = nullTime(created), nullTime(updated), nullTime(published)
	if err := decodeJSON(img, &d.Image); err != nil {
		return domain.Destination{}, fmt.Errorf("destination %q image: %w", d.Slug, err)
	}
	if err := decodeJSON(gal, &d.Gallery); err != nil {
		return domain.Destination{}, fmt.Errorf("destination %q gallery: %w", d.Slug, err)
	}
	if err := decodeJSON(acts, &d.Activities); err != nil {
		return domain.Destination{}, fmt.Errorf("destination %q activities: %w", d.Slug, err)
	}
	if d.Activities == nil {
		d.Activities = []string{}
	}
	return d, nil
}

func scanActivity(s scanner) (domain.Activity, error) {
	var a domain.Activity
	var (
		docID, desc, short, price, dur, cat, booking, locale sql.NullString
		img, gal, loc                                        []byte
		created, updated, published                          sql.NullTime
	)
	if err := s.Scan(
		&a.ID, &docID, &a.Slug, &a.Title, &desc, &short,
		&img, &gal,
		&price, &dur, &cat, &loc, &booking, &locale,
		&created, &updated, &published,
	); err != nil {
		return domain.Activity{}, err
	}
	a.DocumentID, a.Description, a.ShortDescription = docID.String, desc.String, short.String
	a.PriceRange, a.Duration, a.Category = price.String, dur.String, cat.String
	a.BookingInfo, a.Locale = booking.String, locale.String
	a.CreatedAt, a.UpdatedAt, a.PublishedAt = nullTime(created), nullTime(updated), nullTime(published)
	if err := decodeJSON(img, &a.FeaturedImage); err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q image: %w", a.Slug, err)
	}
	if err := decodeJSON(gal, &a.Gallery); err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q gallery: %w", a.Slug, err)
	}
	if err := decodeJSON(loc, &a.Location); err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q location: %w", a.Slug, err)
	}
	return a, nil
}

func scanEvent(s scanner) (domain.Event, error) {
	var e domain.Event
	var (
		docID, desc, loc, cat, url, imgURL, locale sql.NullString
		img                                        []byte
		date, created, updated, published          sql.NullTime
	)
	if err := s.Scan(
		&e.ID, &docID, &e.Slug, &e.Title, &desc, &date, &loc, &img, &cat, &url,
		&imgURL, &locale, &created, &updated, &published,
	); err != nil {
		return domain.Event{}, err
	}
	e.DocumentID, e.Description, e.Location, e.Category = docID.String, desc.String, loc.String, cat.String
	e.URL, e.ImageURL, e.Locale = url.String, imgURL.String, locale.String
	if date.Valid {
		e.Date = date.Time.UTC()
	}
	e.CreatedAt, e.UpdatedAt, e.PublishedAt = nullTime(created), nullTime(updated), nullTime(published)
	if err := decodeJSON(img, &e.Image); err != nil {
		return domain.Event{}, fmt.Errorf("event %q image: %w", e.Slug, err)
	}
	return e, nil
}

func decodeJSON(b []byte, dst any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

func queryAll[T any](ctx context.Context, db *sql.DB, q string, scan func(scanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func queryOne[T any](ctx context.Context, db *sql.DB, q, kind, slug string, scan func(scanner) (T, error)) (T, error) {
	v, err := scan(db.QueryRowContext(ctx, q, slug))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, &domain.NotFoundError{Kind: kind, Slug: slug}
	}
	return v, err
}

// nullCategory turns "no filter" into a NULL argument for the `? IS NULL` guard.
func nullCategory(c string) sql.NullString {
	return sql.NullString{String: c, Valid: c != ""}
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return queryAll(ctx, r.db, listDestinationsSQL, scanDestination)
}

func (r *Repo) GetDestinationBySlug(ctx context.Context, slug string) (domain.Destination, error) {
	return queryOne(ctx, r.db, getDestinationSQL, "destination", slug, scanDestination)
}

func (r *Repo) ListActivities(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	c := nullCategory(f.CategoryValue())
	out, err := queryAll(ctx, r.db, listActivitiesSQL, scanActivity, c, c)
	if err != nil {
		return nil, err
	}
	return domain.Filter(out, f.Match), nil
}

func (r *Repo) GetActivityBySlug(ctx context.Context, slug string) (domain.Activity, error) {
	return queryOne(ctx, r.db, getActivitySQL, "activity", slug, scanActivity)
}

func (r *Repo) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	c := nullCategory(f.CategoryValue())
	return queryAll(ctx, r.db, listEventsSQL, scanEvent, c, c)
}

func (r *Repo) GetEventBySlug(ctx context.Context, slug string) (domain.Event, error) {
	return queryOne(ctx, r.db, getEventSQL, "event", slug, scanEvent)
}
