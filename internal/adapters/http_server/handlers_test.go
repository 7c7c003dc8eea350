package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "hawaii_tourism/internal/adapters/http_server"
	"hawaii_tourism/internal/adapters/mockdata"
	"hawaii_tourism/internal/app"
	"hawaii_tourism/internal/web"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	mock, err := mockdata.New(0)
	if err != nil {
		t.Fatalf("mockdata.New: %v", err)
	}
	views, err := web.New()
	if err != nil {
		t.Fatalf("web.New: %v", err)
	}
	svc := app.NewContentService(nil, mock, nil, 0, true)

	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{C: svc})
	srv.MountPages(&server.Pages{C: svc, Views: views, Now: func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }})
	return srv.Mux()
}

func do(t *testing.T, h http.Handler, path string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type listBody struct {
	Data []map[string]any `json:"data"`
	Meta struct {
		Pagination struct {
			Page      int `json:"page"`
			PageSize  int `json:"pageSize"`
			PageCount int `json:"pageCount"`
			Total     int `json:"total"`
		} `json:"pagination"`
		Source string `json:"source"`
	} `json:"meta"`
}

func TestGetDestination_ETag(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, "/v1/destinations/maui", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Name != "Maui" {
		t.Fatalf("name = %q", body.Data.Name)
	}
	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	rr = do(t, h, "/v1/destinations/maui", map[string]string{"If-None-Match": etag})
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}
}

func TestGetDestination_NotFoundProblem(t *testing.T) {
	rr := do(t, newTestServer(t), "/v1/destinations/atlantis", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "atlantis") {
		t.Fatalf("problem should name the slug: %s", rr.Body.String())
	}
}

func TestListActivities_CategoryFilter(t *testing.T) {
	rr := do(t, newTestServer(t), "/v1/activities?category=water", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var body listBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0]["slug"] != "snorkeling-molokini" {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
	if body.Meta.Pagination.Total != 1 || body.Meta.Source != "mock" {
		t.Fatalf("unexpected meta: %+v", body.Meta)
	}
}

func TestListEvents_Pagination(t *testing.T) {
	rr := do(t, newTestServer(t), "/v1/events?page=2&pageSize=2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body listBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := body.Meta.Pagination
	if len(body.Data) != 1 || p.Page != 2 || p.PageSize != 2 || p.PageCount != 2 || p.Total != 3 {
		t.Fatalf("unexpected page: %d items, %+v", len(body.Data), p)
	}
}

func TestListDestinations_HugePageIsEmpty(t *testing.T) {
	rr := do(t, newTestServer(t), "/v1/destinations?page=2305843009213693953&pageSize=4", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var body listBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 0 || body.Meta.Pagination.Total != 3 {
		t.Fatalf("unexpected page: %d items, %+v", len(body.Data), body.Meta.Pagination)
	}
}

func TestListEvents_AnyCategorySlug(t *testing.T) {
	h := newTestServer(t)
	for _, tt := range []struct {
		path string
		want int
	}{
		{"/v1/events?category=food", 1},
		{"/v1/events?category=music", 0},
	} {
		rr := do(t, h, tt.path, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body=%s", tt.path, rr.Code, rr.Body.String())
		}
		var body listBody
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Data) != tt.want {
			t.Fatalf("%s: got %d events, want %d", tt.path, len(body.Data), tt.want)
		}
	}
}

func TestListQuery_Validation(t *testing.T) {
	h := newTestServer(t)
	tests := []struct {
		path string
		want string
	}{
		{"/v1/activities?category=space", `"rule":"oneof"`},
		{"/v1/activities?pageSize=abc", `"rule":"int"`},
		{"/v1/destinations?pageSize=1000", `"rule":"lte"`},
		{"/v1/activities?destination=Big%20Island", `"rule":"slug"`},
		{"/v1/events?category=Live%20Music", `"rule":"slug"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := do(t, h, tt.path, nil)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.want) {
				t.Fatalf("body %s does not contain %s", rr.Body.String(), tt.want)
			}
		})
	}
}

func TestPages(t *testing.T) {
	h := newTestServer(t)
	tests := []struct {
		path   string
		status int
		want   []string
	}{
		{"/", 200, []string{"Maui", "Oahu", "Kauai", "© 2026"}},
		{"/destinations/maui", 200, []string{"<h2>Maui</h2>", "Things to do on Maui"}},
		{"/destinations/atlantis", 404, []string{"Page not found", "atlantis", "notice-info"}},
		{"/activities/road-to-hana", 200, []string{"Road to Hana"}},
		{"/events?category=food", 200, []string{"event-card", `class="filter-button active">Food`}},
		{"/events?category=music", 200, []string{"event-card", `class="filter-button active">All Events`}},
		{"/activities?limit=0", 400, []string{"limit must be", "notice-warning"}},
		{"/no/such/page", 404, []string{"does not exist"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := do(t, h, tt.path, nil)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			for _, w := range tt.want {
				if !strings.Contains(rr.Body.String(), w) {
					t.Errorf("body missing %q", w)
				}
			}
		})
	}
}

func TestActivitiesPage_WaterFilterRendersOneCard(t *testing.T) {
	rr := do(t, newTestServer(t), "/activities?category=water", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := strings.Count(rr.Body.String(), `class="activity-card"`); got != 1 {
		t.Fatalf("rendered %d activity cards, want 1", got)
	}
}

func TestHealthz(t *testing.T) {
	rr := do(t, newTestServer(t), "/healthz", nil)
	if rr.Code != 200 || rr.Body.String() != "ok" {
		t.Fatalf("unexpected: %d %q", rr.Code, rr.Body.String())
	}
}
