package main

import (
	"fmt"
	"time"

	"github.com/anashalam/music-app-backend/aiclient"
	"github.com/anashalam/music-app-backend/auth"
	"github.com/anashalam/music-app-backend/config"
	"github.com/anashalam/music-app-backend/handler"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/repository"
	"github.com/anashalam/music-app-backend/service"
	"github.com/anashalam/music-app-backend/storage"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(logger.Config{
		ServiceName: "music-app-backend",
		Environment: cfg.Environment,
		LogFilePath: cfg.LogFilePath,
		HMACKey:     cfg.LogHMACKey,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})

	db, err := repository.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.Fatal(logger.EventDBError, "failed to open database", logger.Fields("error", err.Error()))
	}
	defer db.Close()
	repository.ConfigureDatabase(db, 25, 5)

	if err := repository.RunMigrations(db); err != nil {
		logger.Fatal(logger.EventDBError, "failed to run migrations", logger.Fields("error", err.Error()))
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal(logger.EventGeneral, "failed to prepare upload directory", logger.Fields("error", err.Error()))
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenValidityHours)*time.Hour)
	ai := aiclient.NewClient(cfg.AIServerURL, time.Duration(cfg.AITimeoutSeconds)*time.Second)

	userRepo := repository.NewUserRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	adRepo := repository.NewAdRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo, store)
	artistSvc := service.NewArtistService(artistRepo, mediaRepo, socialRepo)
	mediaSvc := service.NewMediaService(mediaRepo, artistRepo, store)
	playlistSvc := service.NewPlaylistService(playlistRepo, mediaRepo)
	socialSvc := service.NewSocialService(socialRepo, artistRepo, mediaRepo)
	adminSvc := service.NewAdminService(userRepo, artistRepo, mediaRepo, adRepo, store)
	recSvc := service.NewRecommendationService(historyRepo, ai)

	dev := cfg.IsDevelopment()
	r := newRouter(handlers{
		auth:      handler.NewAuthHandler(authSvc, dev),
		users:     handler.NewUserHandler(userSvc, dev),
		artists:   handler.NewArtistHandler(artistSvc, dev),
		media:     handler.NewMediaHandler(mediaSvc, recSvc, dev),
		playlists: handler.NewPlaylistHandler(playlistSvc, dev),
		social:    handler.NewSocialHandler(socialSvc, dev),
		admin:     handler.NewAdminHandler(adminSvc, dev),
		recs:      handler.NewRecommendationHandler(recSvc, dev),
	}, tokens, cfg.UploadDir, dev)

	addr := ":" + cfg.ServerPort
	logger.Info(logger.EventServiceStartup, fmt.Sprintf("listening on %s", addr),
		logger.Fields("environment", cfg.Environment))
	if err := r.Run(addr); err != nil {
		logger.Fatal(logger.EventGeneral, "server stopped", logger.Fields("error", err.Error()))
	}
}
