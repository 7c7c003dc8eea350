package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"USE_MOCK_DATA", "MOCK_DELAY_MS", "STRAPI_GRAPHQL_URL", "CONTENT_SOURCE", "GRAPHQL_MAX_RETRIES", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.UseMockData {
		t.Errorf("mock mode should default to off")
	}
	if c.MockDelay != 800*time.Millisecond {
		t.Errorf("MockDelay = %v", c.MockDelay)
	}
	if c.StrapiURL != "http://localhost:1337/graphql" {
		t.Errorf("StrapiURL = %q", c.StrapiURL)
	}
	if c.ContentSource != SourceCMS || c.GraphQLRetries != 0 || c.RedisAddr != "" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("MOCK_DELAY_MS", "0")
	t.Setenv("CONTENT_SOURCE", "MySQL")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("SYNC_WORKERS", "oops")

	c := Load()
	if !c.UseMockData || c.MockDelay != 0 || c.ContentSource != SourceMySQL {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v", c.CacheTTL)
	}
	if c.SyncWorkers != 4 {
		t.Errorf("bad integer should fall back to default, got %d", c.SyncWorkers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
		ok   bool
	}{
		{"valid", func(*Config) {}, true},
		{"unknown source", func(c *Config) { c.ContentSource = "rest" }, false},
		{"negative retries", func(c *Config) { c.GraphQLRetries = -1 }, false},
		{"no workers", func(c *Config) { c.SyncWorkers = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{ContentSource: SourceCMS, SyncWorkers: 1}
			tt.mut(&c)
			if err := c.Validate(); (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
