package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/config"
	dbpkg "github.com/raksinkh/equipment-management/internal/db"
	"github.com/raksinkh/equipment-management/internal/infra/cache"
	"github.com/raksinkh/equipment-management/internal/infra/storage"
	"github.com/raksinkh/equipment-management/internal/logger"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/middleware"
	"github.com/raksinkh/equipment-management/internal/notify"
	"github.com/raksinkh/equipment-management/internal/routes"
	"github.com/raksinkh/equipment-management/internal/validators"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db := dbpkg.NewDB(cfg, log)

	if err := validators.Register(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	// ------------------------------
	// Optional integrations
	// ------------------------------
	var guard cache.SubmitGuard = cache.NoopSubmitGuard{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, double-submit guard degraded", zap.Error(err))
		}
		cancel()
		guard = cache.NewRedisSubmitGuard(rdb, cfg.SubmitLockTTL)
	}

	var store storage.ObjectStore
	if cfg.S3.Enabled() {
		store = storage.NewS3Store(cfg.S3)
	} else {
		log.Info("object storage not configured, image upload disabled")
	}

	var chat notify.ChatSender
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn("telegram disabled", zap.Error(err))
		} else {
			chat = tg
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	hub := notify.NewHub(log)

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(m.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Cfg:     cfg,
		Log:     log,
		Metrics: m,
		Guard:   guard,
		Store:   store,
		Chat:    chat,
		Hub:     hub,
	})

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
