package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hawaii_tourism/internal/adapters/observability"
	redisad "hawaii_tourism/internal/adapters/redis"
	"hawaii_tourism/internal/adapters/strapi"
	"hawaii_tourism/internal/app"
	"hawaii_tourism/internal/domain"
	"hawaii_tourism/internal/shared"
	mysqlrepo "hawaii_tourism/internal/storage/mysql"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		workers int
		only    []string
	)
	cmd := &cobra.Command{
		Use:           "syncer",
		Short:         "Mirror CMS content into MySQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if !cmd.Flags().Changed("workers") {
				workers = cfg.SyncWorkers
			}
			if workers < 1 {
				return fmt.Errorf("--workers must be at least 1, got %d", workers)
			}
			if err := checkKinds(only); err != nil {
				return err
			}
			err := run(cmd.Context(), cfg, app.SyncOptions{Workers: workers, Only: only})
			if err != nil {
				log.Error().Err(err).Msg("sync failed")
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent destination fetches (default from SYNC_WORKERS)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "content kinds to sync: "+strings.Join(shared.ContentKinds, ","))
	return cmd
}

func checkKinds(only []string) error {
	for _, k := range only {
		ok := false
		for _, known := range shared.ContentKinds {
			if k == known {
				ok = true
			}
		}
		if !ok {
			return fmt.Errorf("unknown content kind %q (want one of %s)", k, strings.Join(shared.ContentKinds, ","))
		}
	}
	return nil
}

func run(ctx context.Context, cfg shared.Config, opt app.SyncOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("graphql", cfg.StrapiURL).
		Int("workers", opt.Workers).
		Strs("only", opt.Only).
		Msg("syncer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info().Msg("db ping ok")

	client, err := strapi.New(cfg.StrapiURL, cfg.StrapiToken, cfg.GraphQLRPS, cfg.GraphQLRetries)
	if err != nil {
		return fmt.Errorf("init CMS client: %w", err)
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	rep, err := app.NewSyncService(client, mysqlrepo.New(db), cache).Run(ctx, opt)
	log.Info().
		Int("destinations", rep.Destinations).
		Int("activities", rep.Activities).
		Int("events", rep.Events).
		Int("misses", rep.Misses).
		Int("failures", rep.Failures).
		Msg("sync completed")
	return err
}
