package main // Entry point package

import (
	"context"
	"log" // Logging library
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"    // Optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/welcome-service/internal/config"     // Internal config loader
	"github.com/iliyamo/welcome-service/internal/database"   // MySQL connection pool
	"github.com/iliyamo/welcome-service/internal/handler"    // HTTP handlers
	"github.com/iliyamo/welcome-service/internal/middleware" // Cache and rate limit middleware
	"github.com/iliyamo/welcome-service/internal/queue"      // Background event consumer
	"github.com/iliyamo/welcome-service/internal/repository" // DB repositories
	"github.com/iliyamo/welcome-service/internal/router"     // Route registration
)

func main() {
	// Load a local .env when present. In containers the environment is
	// injected directly, so a missing file is not an error.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open the MySQL pool and verify connectivity before serving traffic.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	messages := repository.NewMessageRepo(db)

	// Make sure the messages table exists and carries the default welcome
	// row. The root endpoint has nothing to serve without it.
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := messages.EnsureSchema(initCtx); err != nil {
		initCancel()
		log.Fatalf("ensure schema: %v", err)
	}
	initCancel()

	// Redis is optional: when the client is nil the cache and rate limiter
	// middlewares turn into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// The response cache is route-scoped, not global: it wraps only the
	// public root route inside RegisterRoutes. Caching the admin group
	// would replay authenticated responses to anonymous clients.
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	greeting := handler.NewGreetingHandler(messages)
	admin := handler.NewAdminHandler(cfg, messages)

	router.RegisterRoutes(e, greeting, db, rdb, cacheMW) // Root, health and readiness routes
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	// Consume message.activated events in the background. The consumer runs
	// its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartMessageConsumer(); err != nil {
			log.Printf("message consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil { // Start HTTP server
			log.Printf("server stopped: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
