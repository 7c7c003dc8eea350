package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeCMS is a minimal GraphQL endpoint answering the content queries from
// fixed records. failing makes it answer with a GraphQL errors array.
type fakeCMS struct {
	hits    atomic.Int64
	failing atomic.Bool
}

var cmsDestinations = []map[string]any{
	{"id": 7, "documentId": "dst-lanai", "name": "Lanai", "slug": "lanai", "shortDescription": "The Pineapple Isle", "activities": []string{"snorkeling"}},
	{"id": 8, "documentId": "dst-maui", "name": "Maui", "slug": "maui", "shortDescription": "The Valley Isle"},
}

var cmsDetails = map[string]map[string]any{
	"lanai": {"id": 7, "documentId": "dst-lanai", "name": "Lanai", "slug": "lanai", "weatherInfo": "Dry and sunny", "travelTips": "Rent a 4x4"},
	"maui":  {"id": 8, "documentId": "dst-maui", "name": "Maui", "slug": "maui", "weatherInfo": "Warm", "travelTips": "Drive to Hana early"},
}

var cmsActivities = []map[string]any{
	{"id": 21, "documentId": "act-hulopoe", "title": "Hulopoe Bay Snorkel", "slug": "hulopoe-snorkel", "category": "water",
		"location": map[string]any{"city": "Lanai", "address": "Hulopoe Beach"}},
	{"id": 22, "documentId": "act-garden", "title": "Garden of the Gods", "slug": "garden-of-the-gods", "category": "land",
		"location": map[string]any{"city": "Lanai"}},
}

var cmsEvents = []map[string]any{
	{"id": 31, "documentId": "ev-pineapple", "title": "Pineapple Festival", "slug": "pineapple-festival", "category": "food",
		"date": "2025-07-05", "location": "Lanai City"},
}

func (f *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	if f.failing.Load() {
		_, _ = io.WriteString(w, `{"data":null,"errors":[{"message":"Forbidden access"}]}`)
		return
	}
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}

	data := map[string]any{}
	switch {
	case strings.Contains(req.Query, "destinations"):
		if slug, ok := req.Variables["slug"].(string); ok {
			out := []map[string]any{}
			if d, ok := cmsDetails[slug]; ok {
				out = append(out, d)
			}
			data["destinations"] = out
		} else {
			data["destinations"] = cmsDestinations
		}
	case strings.Contains(req.Query, "activities"):
		data["activities"] = filterBy(cmsActivities, req.Variables)
	case strings.Contains(req.Query, "events"):
		data["events"] = filterBy(cmsEvents, req.Variables)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

// filterBy applies `filters: {field: {eq: v}}` variables.
func filterBy(items []map[string]any, vars map[string]any) []map[string]any {
	filters, _ := vars["filters"].(map[string]any)
	out := []map[string]any{}
	for _, it := range items {
		keep := true
		for field, cond := range filters {
			eq, _ := cond.(map[string]any)["eq"]
			if it[field] != eq {
				keep = false
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}

func startCMS(t *testing.T) (*fakeCMS, *httptest.Server) {
	t.Helper()
	cms := &fakeCMS{}
	ts := httptest.NewServer(cms)
	t.Cleanup(ts.Close)
	return cms, ts
}
