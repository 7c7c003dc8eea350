//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hawaii_tourism/internal/app"
	mysqlrepo "hawaii_tourism/internal/storage/mysql"
)

// ---------- helpers ----------
func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=tourism",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "tourism")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------

// CMS -> syncer -> MySQL mirror -> API with CONTENT_SOURCE=mysql.
func TestHTTP_EndToEnd_SyncThenServeFromMirror(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)

	_, cmsTS := startCMS(t)
	syncer := app.NewSyncService(newStrapi(t, cmsTS.URL), repo, nil)
	rep, err := syncer.Run(context.Background(), app.SyncOptions{Workers: 2})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if rep.Destinations != 2 || rep.Activities != 2 || rep.Events != 1 || rep.Failures != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	cmsTS.Close() // from here on only the mirror can answer

	api := newAPI(t, repo, false)

	var one struct {
		Data struct {
			Name        string `json:"name"`
			WeatherInfo string `json:"weatherInfo"`
			TravelTips  string `json:"travelTips"`
		} `json:"data"`
	}
	if code := getJSON(t, api.URL+"/v1/destinations/lanai", &one); code != 200 {
		t.Fatalf("status %d", code)
	}
	if one.Data.Name != "Lanai" || one.Data.WeatherInfo != "Dry and sunny" || one.Data.TravelTips != "Rent a 4x4" {
		t.Fatalf("unexpected mirrored destination: %+v", one.Data)
	}

	var acts namesBody
	if code := getJSON(t, api.URL+"/v1/activities?destination=lanai&category=water", &acts); code != 200 {
		t.Fatalf("status %d", code)
	}
	if len(acts.Data) != 1 || acts.Data[0].Slug != "hulopoe-snorkel" {
		t.Fatalf("unexpected activities: %+v", acts.Data)
	}

	var evs namesBody
	if code := getJSON(t, api.URL+"/v1/events?category=food", &evs); code != 200 || len(evs.Data) != 1 {
		t.Fatalf("unexpected events: %d %+v", code, evs.Data)
	}
}
