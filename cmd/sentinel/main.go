package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	appBlacklist "github.com/veloxchat/sentinel/pkg/app/blacklist"
	"github.com/veloxchat/sentinel/pkg/app/language"
	"github.com/veloxchat/sentinel/pkg/app/moderation"
	"github.com/veloxchat/sentinel/pkg/app/scoring"
	appStrike "github.com/veloxchat/sentinel/pkg/app/strike"
	"github.com/veloxchat/sentinel/pkg/config"
	handlers "github.com/veloxchat/sentinel/pkg/handlers/http"
	infraCache "github.com/veloxchat/sentinel/pkg/infra/cache"
	"github.com/veloxchat/sentinel/pkg/infra/classifier"
	"github.com/veloxchat/sentinel/pkg/infra/database"
	"github.com/veloxchat/sentinel/pkg/infra/events"
	infraLogger "github.com/veloxchat/sentinel/pkg/infra/logger"
	"github.com/veloxchat/sentinel/pkg/infra/repository"
	"github.com/veloxchat/sentinel/pkg/middleware"
	"github.com/veloxchat/sentinel/pkg/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load(getConfigPath()); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	redisClient, err := infraCache.NewClient(infraCache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatalf("failed to initialize redis: %v", err)
	}
	defer redisClient.Close()

	publisher := initializePublisher(cfg, logger)

	// repository
	strikeRepository := repository.NewStrikeRepository(db.DB)
	banRepository := repository.NewBanRepository(db.DB)
	violationRepository := repository.NewViolationRepository(db.DB)
	blacklistRepository := repository.NewBlacklistRepository(db.DB)

	// service
	detector := language.NewDetector(cfg.Moderation.SupportedLanguages, cfg.Moderation.DefaultLanguage, logger)
	scorer := classifier.NewHTTPClient(cfg.Classifier.URL, cfg.Classifier.Timeout, logger)
	matcher := appBlacklist.NewMatcher(blacklistRepository, redisClient, cfg.Moderation.BlacklistCacheTTL, logger)
	blacklistManager := appBlacklist.NewManager(blacklistRepository, matcher, redisClient, logger)
	combiner := scoring.NewCombiner(scoring.Thresholds{
		Low:    cfg.Moderation.ToxicityThresholdLow,
		Medium: cfg.Moderation.ToxicityThresholdMedium,
		High:   cfg.Moderation.ToxicityThresholdHigh,
	})
	strikeManager := appStrike.NewManager(strikeRepository, banRepository, appStrike.Config{
		MaxStrikesTempBan: cfg.Moderation.MaxStrikesTempBan,
		MaxStrikesPermBan: cfg.Moderation.MaxStrikesPermBan,
		TempBanDuration:   cfg.Moderation.TempBanDuration,
		StrikeResetWindow: cfg.Moderation.StrikeResetWindow,
	}, logger)
	moderationService := moderation.NewService(
		detector,
		scorer,
		matcher,
		combiner,
		strikeManager,
		violationRepository,
		banRepository,
		publisher,
		logger,
	)

	// sibling processes invalidate our projection cache through redis
	go infraCache.ListenBlacklistInvalidations(ctx, redisClient, logger, matcher.Invalidate)

	go runBanSweep(ctx, moderationService, cfg.Moderation.BanSweepInterval, logger)

	middlewareTransport := &middleware.Transport{
		PanicRecoverMiddleware:  middleware.NewPanicRecoverMiddleware(logger),
		RequestLoggerMiddleware: middleware.NewRequestLoggerMiddleware(logger),
	}

	handlerTransport := handlers.HandlerTransport{
		// Moderation
		ModerateMessageHandler: handlers.NewModerateMessageHandler(logger, moderationService),
		AnalyzeMessageHandler:  handlers.NewAnalyzeMessageHandler(logger, moderationService),
		BatchAnalyzeHandler:    handlers.NewBatchAnalyzeHandler(logger, moderationService),
		// Users
		GetUserStatusHandler:      handlers.NewGetUserStatusHandler(logger, moderationService),
		ListUserViolationsHandler: handlers.NewListUserViolationsHandler(logger, moderationService),
		ListBannedUsersHandler:    handlers.NewListBannedUsersHandler(logger, moderationService),
		UnbanUserHandler:          handlers.NewUnbanUserHandler(logger, moderationService),
		// Blacklist
		AddBlacklistTermHandler:    handlers.NewAddBlacklistTermHandler(logger, blacklistManager),
		RemoveBlacklistTermHandler: handlers.NewRemoveBlacklistTermHandler(logger, blacklistManager),
		RefreshBlacklistHandler:    handlers.NewRefreshBlacklistHandler(logger, blacklistManager),
		GetBlacklistStatsHandler:   handlers.NewGetBlacklistStatsHandler(logger, blacklistManager),
	}

	srv := server.NewModerationServer(server.ModerationServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}

func initializePublisher(cfg *config.Config, logger *logrus.Logger) events.Publisher {
	if !cfg.Kafka.Enabled {
		return events.NewNoopPublisher()
	}
	publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
		Host:  cfg.Kafka.Host,
		Port:  cfg.Kafka.Port,
		Topic: cfg.Kafka.Topic,
	})
	if err != nil {
		logger.Fatalf("failed to initialize kafka publisher: %v", err)
	}
	return publisher
}

func runBanSweep(ctx context.Context, service *moderation.Service, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := service.SweepExpiredBans(ctx); err != nil {
				logger.WithError(err).Error("ban sweep failed")
			}
		}
	}
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config"
}
