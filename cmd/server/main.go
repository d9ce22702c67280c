package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/api/handler"
	"github.com/el-receso/cafeteria-service/internal/cart"
	"github.com/el-receso/cafeteria-service/internal/config"
	"github.com/el-receso/cafeteria-service/internal/db"
	"github.com/el-receso/cafeteria-service/internal/db/repository"
	"github.com/el-receso/cafeteria-service/internal/router"
	"github.com/el-receso/cafeteria-service/internal/service"
	"github.com/el-receso/cafeteria-service/internal/websockets"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Pick the cart store driver
	var cartStore cart.Store
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		cartStore = cart.NewRedisStore(client, cfg.Session.CartTTL)
		logger.Info("Using Redis cart store")
	} else {
		cartStore = cart.NewMemoryStore(cfg.Session.CartTTL)
		logger.Info("Using in-memory cart store")
	}

	// Initialize the order feed hub
	hub := websockets.NewHub(logger)
	go hub.Run()

	// Wire repositories and services
	repos := repository.NewRepositories(database.DB)
	authService := service.NewAuthService(repos.User, service.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	})
	menuService := service.NewMenuService(repos.Menu)
	cartService := service.NewCartService(cartStore, repos.Menu)
	orderService := service.NewOrderService(repos.Order, cartStore, hub, logger)

	handlers := router.Handlers{
		Auth:  handler.NewAuthHandler(authService, cartService, logger),
		Menu:  handler.NewMenuHandler(menuService, logger),
		Cart:  handler.NewCartHandler(cartService, orderService, logger),
		Order: handler.NewOrderHandler(orderService, logger),
		Feed:  handler.NewFeedHandler(hub),
	}

	r := router.New(handlers, authService, database, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.WithField("address", cfg.Server.Address).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited properly")
}
