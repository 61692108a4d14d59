package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	adapthttp "promptpic/internal/adapter/http"
	"promptpic/internal/adapter/memory"
	"promptpic/internal/adapter/postgres"
	"promptpic/internal/app"
	"promptpic/internal/config"
	"promptpic/internal/domain"
	"promptpic/internal/logger"
	"promptpic/internal/metrics"
)

func main() {
	cfg := config.Load()
	logger.SetupDefault(os.Stdout)
	log := slog.Default()

	var (
		profileRepo domain.ProfileRepository
		postRepo    domain.PostRepository
		followRepo  domain.FollowRepository
		sessionRepo domain.SessionRepository
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("db open", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		postRepo = db
		profileRepo = postgres.NewProfileRepo(db)
		followRepo = postgres.NewFollowRepo(db)
		sessionRepo = postgres.NewSessionRepo(db)
		log.Info("storage", "backend", "postgres")
	} else {
		mem := memory.New()
		postRepo = mem
		profileRepo = memory.NewProfileRepo(mem)
		followRepo = memory.NewFollowRepo(mem)
		sessionRepo = memory.NewSessionRepo(mem)
		log.Info("storage", "backend", "memory")
	}

	collector := metrics.NewCollector()

	postSvc := app.NewPostService(postRepo)
	postSvc.SetMetrics(collector)
	followSvc := app.NewFollowService(followRepo, postRepo)
	identitySvc := app.NewIdentityService(profileRepo, postSvc, followSvc)
	identitySvc.SetMetrics(collector)
	promptSvc := app.NewPromptService(postRepo)
	authSvc := app.NewAuthService(identitySvc, sessionRepo)

	ctx := context.Background()
	if cfg.SeedDemo {
		if err := app.SeedDemo(ctx, identitySvc, postRepo); err != nil {
			log.Error("seed demo", "error", err)
			os.Exit(1)
		}
		log.Info("seeded demo data")
	}

	// Hourly sweep of expired session rows.
	go func() {
		for {
			time.Sleep(time.Hour)
			if err := sessionRepo.DeleteExpired(ctx); err != nil {
				log.Warn("session sweep", "error", err)
			}
		}
	}()

	srv := adapthttp.New(identitySvc, postSvc, promptSvc, followSvc, authSvc)
	srv.SetLogger(log)
	srv.SetMetrics(collector)
	if cfg.RateLimit.Enabled {
		srv.SetRateLimit(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Burst)
	}
	if cfg.OIDC.Enabled {
		oidcClient, err := adapthttp.NewOIDC(ctx, cfg.OIDC)
		if err != nil {
			log.Error("oidc setup", "error", err)
			os.Exit(1)
		}
		srv.SetOIDC(oidcClient)
		log.Info("sso enabled", "issuer", cfg.OIDC.IssuerURL)
	}

	log.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
