package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saaprojects/setlist/internal/api"
	"github.com/saaprojects/setlist/internal/core/service"
	"github.com/saaprojects/setlist/internal/infrastructure/config"
	mongodb "github.com/saaprojects/setlist/internal/infrastructure/db/mongo"
	redisdb "github.com/saaprojects/setlist/internal/infrastructure/db/redis"
	"github.com/saaprojects/setlist/pkg/logger"
)

// @title           Setlist API
// @version         1.0
// @description     Accounts, authentication, artist profiles and collaboration requests.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "setlist-api"})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.Env == "development",
		Service: "setlist-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	profileRepo := mongodb.NewArtistProfileRepository(db)
	collabRepo := mongodb.NewCollaborationRepository(db)

	for _, ensure := range []func(context.Context) error{
		accountRepo.EnsureIndexes,
		profileRepo.EnsureIndexes,
		collabRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongodb indexes")
		}
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	denylist := redisdb.NewTokenDenylist(rdb)
	authService := service.NewAuthService(accountRepo, tokens, denylist, log)
	registrationService := service.NewRegistrationService(accountRepo, tokens, log)
	artistService := service.NewArtistService(profileRepo, accountRepo, log)
	collabService := service.NewCollaborationService(collabRepo, accountRepo, log)

	e := api.NewRouter(api.Services{
		Registration:   registrationService,
		Auth:           authService,
		Artists:        artistService,
		Collaborations: collabService,
	}, db, rdb, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
	log.Info().Msg("stopped")
}
