package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/tour_booking/internal/adapter/cache"
	"github.com/srgjo27/tour_booking/internal/adapter/handler"
	"github.com/srgjo27/tour_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/tour_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/tour_booking/internal/core/ports"
	"github.com/srgjo27/tour_booking/internal/core/services"
	"github.com/srgjo27/tour_booking/internal/platform/config"
	"github.com/srgjo27/tour_booking/internal/platform/database"
	"github.com/srgjo27/tour_booking/internal/platform/logger"
)

func main() {
	boot := logger.New(os.Stdout, "info")
	cfg := config.Load(boot)
	log := logger.New(os.Stdout, cfg.LogLevel)

	var (
		tourRepo    ports.TourRepository
		bookingRepo ports.BookingRepository
	)

	switch cfg.Store {
	case config.StorePostgres:
		db, err := database.NewPostgresDB(cfg.DB, log)
		if err != nil {
			log.Error("failed to connect to db after retries", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(context.Background(), db); err != nil {
			log.Error("database migration failed", "error", err)
			os.Exit(1)
		}

		tourRepo = postgres.NewTourRepository(db)
		bookingRepo = postgres.NewBookingRepository(db)
	default:
		store := memory.NewStore()
		if cfg.SeedDemo {
			store.SeedDemo(time.Now())
		}
		tourRepo = store
		bookingRepo = store
		log.Info("using in-memory store", "seeded", cfg.SeedDemo)
	}

	var bookingCache ports.BookingCache
	if cfg.RedisAddr != "" {
		log.Info("connecting to redis", "addr", cfg.RedisAddr)

		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   0,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		bookingCache = cache.NewBookingCache(redisClient, cfg.CacheTTL)
		log.Info("redis connected")
	}

	bookingService := services.NewBookingService(tourRepo, bookingRepo, bookingCache, log)
	tourService := services.NewTourService(tourRepo, bookingRepo, bookingCache, log)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := handler.NewRouter(
		handler.RouterConfig{CORSOrigins: cfg.CORSOrigins, Log: log},
		handler.NewBookingHandler(bookingService, log),
		handler.NewTourHandler(tourService, log),
	)

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", cfg.AppAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server startup failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exiting")
}
