package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JMDCLkr04/Cinema/internal/config"
	"github.com/JMDCLkr04/Cinema/internal/database"
	"github.com/JMDCLkr04/Cinema/internal/handler"
	"github.com/JMDCLkr04/Cinema/internal/middleware"
	"github.com/JMDCLkr04/Cinema/internal/queue"
	"github.com/JMDCLkr04/Cinema/internal/repository"
	"github.com/JMDCLkr04/Cinema/internal/router"
	queue_publisher "github.com/JMDCLkr04/Cinema/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		logger.Warn("redis unavailable; cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	reservations := repository.NewReservationRepo(db)
	seats := repository.NewSeatRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	seatHandler := handler.NewSeatAssignmentHandler(assignments, reservations, seats, queue_publisher.PublishSeatEvent)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, seatHandler, rdb)
	router.RegisterSeatAssignment(e, seatHandler, cfg.JWTSecret, rdb)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)

	go queue.StartSeatEventConsumer(logger.Named("seat-consumer"))

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
