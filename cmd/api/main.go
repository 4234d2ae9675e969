package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	"github.com/BruksfildServices01/meeting-scheduler/internal/clock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/meeting-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/meeting-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/meeting-scheduler/internal/lock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/routes"
	"github.com/BruksfildServices01/meeting-scheduler/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not read .env: %v", err)
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	auditDispatcher := audit.NewDispatcher(audit.New(db), cfg.AuditQueueSize, logger)
	defer auditDispatcher.Close()

	deps := routes.Dependencies{
		Config:      cfg,
		Store:       infraRepo.NewMeetingGormRepository(db),
		AuditReader: audit.New(db),
		Audit:       auditDispatcher,
		Locker:      lock.NoopLocker{},
		Clock:       clock.System(cfg.Timezone),
		Logger:      logger,
	}

	if cfg.RedisEnabled() && cfg.UserLockEnabled {
		client := newRedisClient(cfg)
		defer client.Close()
		deps.Locker = lock.NewRedisLocker(client, cfg.UserLockTTL)
		log.Printf("per-user locking enabled via redis %s", client.Options().Addr)
	}

	if cfg.S3Enabled() {
		deps.Publisher = storage.NewCalendarPublisher(storage.NewS3Client(cfg), cfg.S3Bucket, cfg.S3Prefix)
		log.Printf("calendar publishing enabled to bucket %s", cfg.S3Bucket)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func newRedisClient(cfg *config.Config) *redis.Client {
	opts := &redis.Options{Addr: cfg.RedisURL}
	if strings.HasPrefix(cfg.RedisURL, "redis://") || strings.HasPrefix(cfg.RedisURL, "rediss://") {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	return client
}
