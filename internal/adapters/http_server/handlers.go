// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hawaii_tourism/internal/app"
	"hawaii_tourism/internal/domain"
)

type Handlers struct{ C *app.ContentService }

type problem struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Value any    `json:"value"`
}

type envelope struct {
	Data any   `json:"data"`
	Meta *meta `json:"meta,omitempty"`
}

type meta struct {
	Pagination domain.Pagination `json:"pagination"`
	Source     string            `json:"source"` // live|mock
}

// listQuery holds the query parameters shared by the collection endpoints.
// Categories are free-form slugs; endpoints with a closed set pass a rule.
type listQuery struct {
	Page        int    `validate:"gte=0"`
	PageSize    int    `validate:"gte=0,lte=100"`
	Category    string `validate:"omitempty,max=64,slug"`
	Destination string `validate:"omitempty,max=64,slug"`
}

const activityCategoryRule = "oneof=all water land cultural food"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// slug: already in canonical lower-case dashed form
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == domain.Slugify(s)
	})
	return v
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/destinations", h.listDestinations)
		r.Get("/destinations/{slug}", h.getDestination)
		r.Get("/activities", h.listActivities)
		r.Get("/activities/{slug}", h.getActivity)
		r.Get("/events", h.listEvents)
		r.Get("/events/{slug}", h.getEvent)
	})
}

func parseListQuery(v url.Values, categoryRule string) (listQuery, *problem) {
	var q listQuery
	var errs []fieldError
	atoi := func(field, key string) int {
		s := v.Get(key)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, fieldError{Field: field, Rule: "int", Value: s})
		}
		return n
	}
	q.Page = atoi("Page", "page")
	q.PageSize = atoi("PageSize", "pageSize")
	q.Category = v.Get("category")
	q.Destination = v.Get("destination")

	if err := validate.Struct(q); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				errs = append(errs, fieldError{Field: fe.Field(), Rule: fe.Tag(), Value: fe.Value()})
			}
		} else {
			errs = append(errs, fieldError{Field: "query", Rule: err.Error()})
		}
	}
	if q.Category != "" && categoryRule != "" {
		var ve validator.ValidationErrors
		if err := validate.Var(q.Category, categoryRule); errors.As(err, &ve) {
			errs = append(errs, fieldError{Field: "Category", Rule: ve[0].Tag(), Value: q.Category})
		}
	}
	if len(errs) > 0 {
		return q, &problem{Type: "about:blank", Title: "Invalid query", Status: http.StatusBadRequest, Errors: errs}
	}
	return q, nil
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses. Not-found keeps the
// error text so the caller sees which slug was missing.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusGatewayTimeout, "Timeout", "content lookup timed out")
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to send
	default:
		log.Error().Err(err).Msg("content lookup failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writePage[T any](w http.ResponseWriter, r *http.Request, tr *app.SourceTrace, items []T, q listQuery) {
	page, pg := app.Paginate(items, q.Page, q.PageSize)
	writeJSON(w, r, envelope{Data: page, Meta: &meta{Pagination: pg, Source: string(tr.Origin())}})
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	q, p := parseListQuery(r.URL.Query(), "")
	if p != nil {
		writeProblemBody(w, *p)
		return
	}
	ctx, tr := app.TraceSource(r.Context())
	out, err := h.C.ListDestinations(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, r, tr, out, q)
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	d, err := h.C.GetDestination(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, envelope{Data: d})
}

func (h *Handlers) listActivities(w http.ResponseWriter, r *http.Request) {
	q, p := parseListQuery(r.URL.Query(), activityCategoryRule)
	if p != nil {
		writeProblemBody(w, *p)
		return
	}
	ctx, tr := app.TraceSource(r.Context())
	out, err := h.C.ListActivities(ctx, domain.ActivityFilter{Destination: q.Destination, Category: q.Category})
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, r, tr, out, q)
}

func (h *Handlers) getActivity(w http.ResponseWriter, r *http.Request) {
	a, err := h.C.GetActivity(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, envelope{Data: a})
}

func (h *Handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	q, p := parseListQuery(r.URL.Query(), "")
	if p != nil {
		writeProblemBody(w, *p)
		return
	}
	ctx, tr := app.TraceSource(r.Context())
	out, err := h.C.ListEvents(ctx, domain.EventFilter{Category: q.Category})
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, r, tr, out, q)
}

func (h *Handlers) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.C.GetEvent(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, envelope{Data: e})
}
