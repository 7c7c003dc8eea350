package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	SourceCMS   = "cms"
	SourceMySQL = "mysql"
)

// ContentKinds are the collections the syncer knows how to mirror.
var ContentKinds = []string{"destinations", "activities", "events"}

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	LogFile     string

	UseMockData bool
	MockDelay   time.Duration

	StrapiURL      string
	StrapiToken    string
	GraphQLRPS     int
	GraphQLRetries int

	ContentSource string // cms|mysql
	MySQLDSN      string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	SyncWorkers int
}

// Load reads the environment, after merging a local .env file when present.
// Variables already set in the environment win over the file.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		LogFile:        os.Getenv("LOG_FILE"),
		UseMockData:    boolean("USE_MOCK_DATA", false),
		MockDelay:      time.Duration(atoi("MOCK_DELAY_MS", 800)) * time.Millisecond,
		StrapiURL:      env("STRAPI_GRAPHQL_URL", "http://localhost:1337/graphql"),
		StrapiToken:    os.Getenv("STRAPI_API_TOKEN"),
		GraphQLRPS:     atoi("GRAPHQL_RPS", 10),
		GraphQLRetries: atoi("GRAPHQL_MAX_RETRIES", 0),
		ContentSource:  strings.ToLower(env("CONTENT_SOURCE", SourceCMS)),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/tourism?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SyncWorkers:    atoi("SYNC_WORKERS", 4),
	}
	if c.StrapiToken == "" && !c.UseMockData {
		log.Warn().Msg("STRAPI_API_TOKEN is empty")
	}
	return c
}

func (c Config) Validate() error {
	switch c.ContentSource {
	case SourceCMS, SourceMySQL:
	default:
		return fmt.Errorf("CONTENT_SOURCE must be %q or %q, got %q", SourceCMS, SourceMySQL, c.ContentSource)
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("MOCK_DELAY_MS must not be negative")
	}
	if c.GraphQLRetries < 0 {
		return fmt.Errorf("GRAPHQL_MAX_RETRIES must not be negative")
	}
	if c.SyncWorkers < 1 {
		return fmt.Errorf("SYNC_WORKERS must be at least 1")
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolean(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
		return def
	}
	return b
}
