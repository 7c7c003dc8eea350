package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hawaii_tourism/internal/adapters/http_server"
	"hawaii_tourism/internal/adapters/mockdata"
	"hawaii_tourism/internal/adapters/observability"
	redisad "hawaii_tourism/internal/adapters/redis"
	"hawaii_tourism/internal/adapters/strapi"
	"hawaii_tourism/internal/app"
	"hawaii_tourism/internal/domain"
	"hawaii_tourism/internal/shared"
	mysqlrepo "hawaii_tourism/internal/storage/mysql"
	"hawaii_tourism/internal/web"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	mock, err := mockdata.New(cfg.MockDelay)
	if err != nil {
		log.Fatal().Err(err).Msg("load mock data failed")
	}

	var live domain.ContentSource
	if !cfg.UseMockData {
		switch cfg.ContentSource {
		case shared.SourceMySQL:
			db, err := sql.Open("mysql", cfg.MySQLDSN)
			if err != nil {
				log.Fatal().Err(err).Msg("sql.Open failed")
			}
			defer db.Close()
			if err := db.Ping(); err != nil {
				// the service still answers from mock data
				log.Error().Err(err).Msg("db.Ping failed")
			} else {
				log.Info().Msg("database connection ok")
			}
			live = mysqlrepo.New(db)
		default:
			cl, err := strapi.New(cfg.StrapiURL, cfg.StrapiToken, cfg.GraphQLRPS, cfg.GraphQLRetries)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize CMS client")
			}
			live = cl
		}
	}
	log.Info().
		Bool("mock", cfg.UseMockData).
		Str("source", cfg.ContentSource).
		Str("graphql", cfg.StrapiURL).
		Msg("content source selected")

	var cache domain.Cache
	if cfg.RedisAddr != "" && cfg.CacheTTL > 0 {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		pctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, cache errors will be ignored")
		}
		cancel()
		cache = rc
	}

	content := app.NewContentService(live, mock, cache, cfg.CacheTTL, cfg.UseMockData)

	views, err := web.New()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates failed")
	}

	// http
	srv := server.New(15 * time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{C: content})
	srv.MountPages(&server.Pages{C: content, Views: views})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
