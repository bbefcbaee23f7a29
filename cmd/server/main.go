package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecocruise-admin/internal/aggregator"
	"ecocruise-admin/internal/config"
	"ecocruise-admin/internal/handlers"
	"ecocruise-admin/internal/middleware"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/cache"
	"ecocruise-admin/pkg/database"
	"ecocruise-admin/pkg/logger"
	"ecocruise-admin/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := cfg.App.LogLevel
	if cfg.App.Debug {
		logLevel = "debug"
	}
	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(logLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger.WithFields(map[string]interface{}{
		"service":     cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting EcoCruise admin dashboard")

	client := upstream.NewClient(cfg.Upstream, appLogger)

	// Sessions prefer Redis; without a configured host they stay in
	// process memory.
	var store services.SessionStore
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()
		store = services.NewRedisSessionStore(redisCache)
		appLogger.Info("Session store: redis")
	} else {
		store = services.NewMemorySessionStore()
		appLogger.Warn("Session store: in-memory, sessions will not survive restarts")
	}

	authService := services.NewAuthService(client, store, cfg.Security, appLogger)
	registry := services.NewWorkspaceRegistry(client, appLogger)

	routeHandlers := &routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, registry, cfg.Security),
		Overview:    handlers.NewOverviewHandler(registry),
		Analytics:   handlers.NewAnalyticsHandler(registry),
		Users:       handlers.NewUsersHandler(registry),
		Routes:      handlers.NewRoutesHandler(registry),
		Withdrawals: handlers.NewWithdrawalsHandler(registry),
		Tickets:     handlers.NewTicketsHandler(registry),
		Wallet:      handlers.NewWalletHandler(registry),
		Settings:    handlers.NewSettingsHandler(registry),
	}

	// The direct-database aggregate is optional; without MONGODB_URI the
	// dashboard proxies the upstream API's analytics instead.
	if cfg.Database.URI != "" {
		mongo, err := database.NewMongoDB(&database.DatabaseConfig{
			URI:            cfg.Database.URI,
			Database:       cfg.Database.Database,
			MaxPoolSize:    cfg.Database.MaxPoolSize,
			MinPoolSize:    cfg.Database.MinPoolSize,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			SocketTimeout:  cfg.Database.SocketTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		defer mongo.Close()

		service := aggregator.NewService(aggregator.NewRepository(mongo.Database), appLogger)
		routeHandlers.Aggregator = handlers.NewAggregatorHandler(service)
		appLogger.Info("Analytics aggregator enabled")
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	v1 := router.Group("/api/v1")
	routes.SetupDashboardRoutes(v1, routeHandlers, authService, cfg.Security, appLogger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		appLogger.WithField("addr", addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}
