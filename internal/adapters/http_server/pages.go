package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hawaii_tourism/internal/app"
	"hawaii_tourism/internal/domain"
	"hawaii_tourism/internal/web"
)

const activitiesPageLimit = 24

// Pages serves the server-rendered site.
type Pages struct {
	C     *app.ContentService
	Views *web.Renderer
	Now   func() time.Time
}

func (s *Server) MountPages(p *Pages) {
	if p.Now == nil {
		p.Now = time.Now
	}
	s.mux.Get("/", p.home)
	s.mux.Get("/destinations/{slug}", p.destination)
	s.mux.Get("/activities", p.activities)
	s.mux.Get("/activities/{slug}", p.activity)
	s.mux.Get("/events", p.events)
	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		p.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
	})
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	h, f := web.Chrome(r.URL.Path, p.Now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.Views.Render(w, page, web.Page{Title: title, Header: h, Footer: f, Data: data}); err != nil {
		log.Error().Err(err).Str("page", page).Msg("render failed")
	}
}

func (p *Pages) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	p.render(w, r, status, "error", "Error", web.ErrorView{
		Status:  status,
		Message: web.ErrorMessage{Message: msg, Type: web.NoticeFor(status)},
	})
}

// lookupFailed renders the error page for a failed single-item lookup.
func (p *Pages) lookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		p.renderError(w, r, http.StatusNotFound, err.Error())
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("page lookup failed")
	p.renderError(w, r, http.StatusInternalServerError, "Failed to load content. Please try again later.")
}

func (p *Pages) home(w http.ResponseWriter, r *http.Request) {
	v := web.HomeView{}
	ds, err := p.C.ListDestinations(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("home destinations failed")
		v.Error = &web.ErrorMessage{Message: "Failed to load destinations. Please try again later.", Type: web.NoticeError}
	}
	v.Destinations = ds

	acts, err := p.C.ListActivities(r.Context(), domain.ActivityFilter{})
	if err != nil {
		log.Warn().Err(err).Msg("home activities failed")
	}
	v.Grid = web.NewActivityGrid(acts, r.URL.Query().Get("category"), web.DefaultGridLimit, "/")
	p.render(w, r, http.StatusOK, "home", "", v)
}

func (p *Pages) destination(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	d, err := p.C.GetDestination(r.Context(), slug)
	if err != nil {
		p.lookupFailed(w, r, err)
		return
	}
	acts, err := p.C.ListActivities(r.Context(), domain.ActivityFilter{Destination: slug})
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("destination activities failed")
	}
	p.render(w, r, http.StatusOK, "destination", d.Name, web.DestinationView{
		Destination: d,
		Grid:        web.NewActivityGrid(acts, r.URL.Query().Get("category"), web.DefaultGridLimit, "/destinations/"+slug),
	})
}

func (p *Pages) activities(w http.ResponseWriter, r *http.Request) {
	limit := activitiesPageLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > app.MaxPageSize {
			p.renderError(w, r, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}
	acts, err := p.C.ListActivities(r.Context(), domain.ActivityFilter{})
	if err != nil {
		log.Warn().Err(err).Msg("activities page failed")
	}
	p.render(w, r, http.StatusOK, "activities", "Activities", web.ActivitiesView{
		Grid: web.NewActivityGrid(acts, r.URL.Query().Get("category"), limit, "/activities"),
	})
}

func (p *Pages) activity(w http.ResponseWriter, r *http.Request) {
	a, err := p.C.GetActivity(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		p.lookupFailed(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, "activity", a.Title, web.ActivityView{Activity: a})
}

func (p *Pages) events(w http.ResponseWriter, r *http.Request) {
	evs, err := p.C.ListEvents(r.Context(), domain.EventFilter{})
	if err != nil {
		log.Warn().Err(err).Msg("events page failed")
	}
	p.render(w, r, http.StatusOK, "events", "Events", web.NewEventsView(evs, r.URL.Query().Get("category")))
}
