package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/config"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/db"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/gemini"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/handler"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/repository"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/router"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "comment-booster")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, int32(cfg.DatabaseMaxConns))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("invalid REDIS_URL, caching disabled: %v", err)
		} else {
			rdb = redis.NewClient(opts)
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Printf("redis unreachable, caching disabled: %v", err)
				rdb = nil
			}
		}
	}

	store := repository.NewStore(pool)
	cache := service.NewCacheService(rdb)

	keys := youtube.NewKeyPool(cfg.YouTubeAPIKeys)
	oauth := youtube.NewOAuthPool(cfg.GoogleOAuthClients, cfg.OAuthRedirectURL)
	client := youtube.NewClient(keys, oauth)
	generator := gemini.NewGenerator(cfg.GeminiAPIKey)

	account, err := seedAccount(ctx, store)
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	if account.Connected() {
		client.SetCredentials(*account.YouTubeToken, *account.YouTubeRefreshToken)
		log.Print("restored YouTube credentials from storage")
	}

	handler.InitMetrics(pool)
	service.InitMetrics(prometheus.DefaultRegisterer)

	pipeline := service.NewPipeline(store, client, generator, cache)
	automation := service.NewAutomation(store, client, generator, cache)
	channels := service.NewChannelService(store, client, pipeline, cache)
	sweeper := service.NewSweeper(store, client, pipeline, cfg.SweepInterval)
	go sweeper.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "YouTube Comment Booster",
		ServerHeader: "CommentBooster",
	})

	router.Setup(app, &router.Handlers{
		Auth:       handler.NewAuthHandler(store, client),
		Channel:    handler.NewChannelHandler(channels, pipeline),
		Automation: handler.NewAutomationHandler(automation, store),
		Activity:   handler.NewActivityHandler(store),
		Stats:      handler.NewStatsHandler(store, cache),
		Status:     handler.NewStatusHandler(store, client, generator, automation),
		Queue:      handler.NewQueueHandler(pipeline, store),
		Health:     handler.NewHealthHandler(pool, rdb),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Print("shutting down")
		sweeper.Stop()
		if automation.IsRunning() {
			if err := automation.Pause(context.Background()); err != nil {
				log.Printf("pause automation: %v", err)
			}
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("comment booster backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// seedAccount guarantees the single operator account exists.
func seedAccount(ctx context.Context, store *repository.Store) (*model.Account, error) {
	acc, err := store.GetAccountByUsername(ctx, "demo_user")
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return store.CreateAccount(ctx, "demo_user", "demo_password")
}
