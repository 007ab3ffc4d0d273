package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rewear/rewear-api/internal/config"
	"github.com/rewear/rewear-api/internal/domain/admin"
	"github.com/rewear/rewear-api/internal/domain/auth"
	"github.com/rewear/rewear-api/internal/domain/favorite"
	"github.com/rewear/rewear-api/internal/domain/item"
	"github.com/rewear/rewear-api/internal/domain/notification"
	"github.com/rewear/rewear-api/internal/domain/points"
	"github.com/rewear/rewear-api/internal/domain/swap"
	"github.com/rewear/rewear-api/internal/domain/user"
	"github.com/rewear/rewear-api/internal/middleware"
	"github.com/rewear/rewear-api/internal/pkg/database"
	"github.com/rewear/rewear-api/internal/pkg/imaging"
	"github.com/rewear/rewear-api/internal/pkg/jwt"
	"github.com/rewear/rewear-api/internal/pkg/logger"
	"github.com/rewear/rewear-api/internal/pkg/response"
	"github.com/rewear/rewear-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Bootstrap(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap database schema")
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, refresh tokens and live notifications disabled")
		redisClient = nil
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	var store storage.Storage
	if cfg.StorageDriver == "s3" {
		store, err = storage.NewS3Storage(storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.PublicURL,
		})
	} else {
		store, err = storage.NewLocalStorage(cfg.UploadDir, cfg.PublicURL)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// Repositories
	userRepo := user.NewRepository(db)
	itemRepo := item.NewRepository(db)
	swapRepo := swap.NewRepository(db)
	adminRepo := admin.NewRepository(db)
	favoriteRepo := favorite.NewRepository(db)
	ledger := points.NewLedger(db)

	// Notification hub
	hub := notification.NewHub(redisClient)
	go hub.Run()
	defer hub.Shutdown()

	// Services
	authService := auth.NewService(userRepo, ledger, jwtService, redisClient, cfg.WelcomeBonusPoints)
	itemService := item.NewService(itemRepo, store, processor, cfg.MaxImagesPerItem)
	pointsService := points.NewService(ledger)
	swapService := swap.NewService(swapRepo, itemRepo, ledger, hub, cfg.SwapRewardRate, cfg.RedemptionPayoutRate)
	adminService := admin.NewService(adminRepo, itemService, itemRepo, userRepo, ledger, hub, cfg.ListingBonusPoints)

	// Handlers
	authHandler := auth.NewHandler(authService)
	itemHandler := item.NewHandler(itemService, cfg.MaxImageSizeMB)
	pointsHandler := points.NewHandler(pointsService)
	swapHandler := swap.NewHandler(swapService)
	adminHandler := admin.NewHandler(adminService)
	favoriteHandler := favorite.NewHandler(favoriteRepo, itemService)
	wsHandler := notification.NewHandler(hub, jwtService)

	// Middleware
	authMW := middleware.Auth(jwtService)
	optionalAuthMW := middleware.OptionalAuth(jwtService)
	requireAdminMW := middleware.RequireAdmin()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// The websocket route stays outside this subtree, TimeoutHandler
		// cannot hijack connections
		r.Use(middleware.Timeout(60 * time.Second))

		r.Mount("/auth", authHandler.Routes(authMW))
		r.Mount("/items", itemHandler.Routes(authMW, optionalAuthMW))
		r.Mount("/swaps", swapHandler.Routes(authMW))
		r.Mount("/admin", adminHandler.Routes(authMW, requireAdminMW))

		r.Get("/categories", itemHandler.Categories)

		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Post("/items/{id}/favorite", favoriteHandler.Add)
			r.Delete("/items/{id}/favorite", favoriteHandler.Remove)
			r.Get("/items/{id}/favorite", favoriteHandler.Check)

			r.Get("/users/me/items", itemHandler.ListMine)
			r.Get("/users/me/favorites", favoriteHandler.ListMine)
			r.Mount("/users/me/points", pointsHandler.Routes(authMW))
		})
	})

	r.Get("/ws", wsHandler.ServeWS)

	if cfg.StorageDriver == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
