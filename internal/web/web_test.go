package web_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"hawaii_tourism/internal/adapters/mockdata"
	"hawaii_tourism/internal/domain"
	"hawaii_tourism/internal/web"
)

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	r, err := web.New()
	if err != nil {
		t.Fatalf("web.New: %v", err)
	}
	return r
}

func mockActivities(t *testing.T) []domain.Activity {
	t.Helper()
	src, err := mockdata.New(0)
	if err != nil {
		t.Fatalf("mockdata.New: %v", err)
	}
	acts, err := src.ListActivities(context.Background(), domain.ActivityFilter{})
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	return acts
}

func TestActivityGrid_FilterRendersMatchingCards(t *testing.T) {
	r := newRenderer(t)
	acts := mockActivities(t)
	if len(acts) != 3 {
		t.Fatalf("expected 3 mock activities, got %d", len(acts))
	}

	tests := []struct {
		filter string
		cards  int
	}{
		{"water", 1},
		{"land", 1},
		{"cultural", 1},
		{"food", 0},
		{"all", 3},
		{"bogus", 3},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			var buf bytes.Buffer
			g := web.NewActivityGrid(acts, tt.filter, 0, "/activities")
			if err := r.Component(&buf, "activity_grid", g); err != nil {
				t.Fatalf("render: %v", err)
			}
			html := buf.String()
			if got := strings.Count(html, `class="activity-card"`); got != tt.cards {
				t.Fatalf("rendered %d cards, want %d\n%s", got, tt.cards, html)
			}
			if tt.cards == 0 && !strings.Contains(html, "empty-state") {
				t.Fatalf("expected empty state")
			}
		})
	}
}

func TestActivityGrid_WaterCardIsSnorkeling(t *testing.T) {
	g := web.NewActivityGrid(mockActivities(t), "water", 0, "/activities")
	if len(g.Cards) != 1 || g.Cards[0].Slug != "snorkeling-molokini" {
		t.Fatalf("unexpected cards: %+v", g.Cards)
	}
	for _, f := range g.Filters {
		if f.Active != (f.ID == "water") {
			t.Fatalf("filter %s active=%v", f.ID, f.Active)
		}
	}
}

func TestActivityGrid_Limit(t *testing.T) {
	var acts []domain.Activity
	for i := 0; i < 8; i++ {
		acts = append(acts, domain.Activity{Slug: "a", Category: "land"})
	}
	g := web.NewActivityGrid(acts, "", 0, "/activities")
	if len(g.Cards) != web.DefaultGridLimit || g.MoreHref == "" || g.Active != "all" {
		t.Fatalf("unexpected grid: cards=%d more=%q active=%q", len(g.Cards), g.MoreHref, g.Active)
	}
	g = web.NewActivityGrid(acts, "land", 10, "/activities")
	if len(g.Cards) != 8 || g.MoreHref != "" {
		t.Fatalf("unexpected grid: cards=%d more=%q", len(g.Cards), g.MoreHref)
	}
}

func TestRender_HomePage(t *testing.T) {
	r := newRenderer(t)
	h, f := web.Chrome("/", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	page := web.Page{
		Header: h,
		Footer: f,
		Data: web.HomeView{
			Destinations: []domain.Destination{{Name: "Maui", Slug: "maui", ShortDescription: "The Valley Isle"}},
			Grid:         web.NewActivityGrid(mockActivities(t), "all", 0, "/"),
		},
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, "home", page); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Maui", `href="/destinations/maui"`, "© 2026", `class="nav-link active">Islands`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRender_ErrorPage(t *testing.T) {
	r := newRenderer(t)
	h, f := web.Chrome("/destinations/atlantis", time.Now())
	var buf bytes.Buffer
	err := r.Render(&buf, "error", web.Page{Header: h, Footer: f, Data: web.ErrorView{
		Status:  404,
		Message: web.ErrorMessage{Message: `destination with slug "atlantis" not found`},
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "Page not found") || !strings.Contains(html, "notice-error") || !strings.Contains(html, "atlantis") {
		t.Fatalf("unexpected error page:\n%s", html)
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r := newRenderer(t)
	if err := r.Render(&bytes.Buffer{}, "nope", web.Page{}); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}

func TestNoticeFor(t *testing.T) {
	for _, tt := range []struct {
		status int
		class  string
	}{
		{404, "notice notice-info"},
		{400, "notice notice-warning"},
		{500, "notice notice-error"},
	} {
		got := web.ErrorMessage{Message: "x", Type: web.NoticeFor(tt.status)}.Class()
		if got != tt.class {
			t.Errorf("status %d: class = %q, want %q", tt.status, got, tt.class)
		}
	}
	if got := (web.ErrorMessage{}).Class(); got != "notice notice-error" {
		t.Errorf("zero value class = %q", got)
	}
}

func TestNewEventsView(t *testing.T) {
	events := []domain.Event{
		{Slug: "merrie-monarch-festival", Category: "cultural"},
		{Slug: "aloha-festivals", Category: "Cultural"},
		{Slug: "kona-coffee-festival", Category: "food"},
		{Slug: "ironman", Category: "sports"},
	}
	tests := []struct {
		active     string
		wantActive string
		wantEvents int
	}{
		{"sports", "sports", 1},
		{"cultural", "cultural", 2},
		{"", "all", 4},
		{"water", "all", 4},
	}
	for _, tt := range tests {
		t.Run(tt.active, func(t *testing.T) {
			v := web.NewEventsView(events, tt.active)
			if len(v.Events) != tt.wantEvents {
				t.Fatalf("got %d events, want %d", len(v.Events), tt.wantEvents)
			}
			var ids []string
			active := ""
			for _, f := range v.Filters {
				ids = append(ids, f.ID)
				if f.Active {
					active = f.ID
				}
			}
			if diff := cmp.Diff([]string{"all", "cultural", "food", "sports"}, ids); diff != "" {
				t.Fatalf("filters (-want +got):\n%s", diff)
			}
			if active != tt.wantActive {
				t.Fatalf("active = %q, want %q", active, tt.wantActive)
			}
		})
	}
}
