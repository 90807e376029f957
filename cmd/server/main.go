package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/naivedh/roomgate/internal/api"
	"github.com/naivedh/roomgate/internal/config"
	"github.com/naivedh/roomgate/internal/db"
	"github.com/naivedh/roomgate/internal/gateway"
	"github.com/naivedh/roomgate/internal/live"
	"github.com/naivedh/roomgate/internal/middleware"
	"github.com/naivedh/roomgate/internal/observ"
	"github.com/naivedh/roomgate/internal/repository/postgres"
	"github.com/naivedh/roomgate/internal/service"
	"github.com/naivedh/roomgate/internal/token"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup has no parent deadline; take as long as the connections need.
	database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	rooms := postgres.NewRoomStore(database.Pool())
	gw := gateway.NewClient(cfg.GatewayURL, cfg.GatewayAPIKey, logger)
	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenVersion)
	gate := service.NewGate(codec)
	feed := live.NewFeed(rdb, logger)

	roomSvc := service.NewRoomService(rooms, gw, codec, cfg.BcryptCost, logger)
	infoSvc := service.NewInfoService(rooms, gate)
	joinSvc := service.NewJoinService(rooms, gw, gate, feed, logger)
	tabSvc := service.NewTabService(rooms, gate, feed, logger)

	roomHandler := api.NewRoomHandler(roomSvc, infoSvc, logger)
	joinHandler := api.NewJoinHandler(joinSvc, logger)
	tabHandler := api.NewTabHandler(tabSvc, logger)
	liveHandler := api.NewLiveHandler(infoSvc, feed, logger)

	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	// Health check stays public for load balancers.
	srv.GET("/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Room endpoints carry their own per-room credentials; the identity
	// middleware only attaches the optional account identity and never
	// rejects a request.
	v1 := srv.Group("/v1")
	v1.Use(middleware.Identity(cfg.IdentitySecret))

	v1.POST("/rooms", roomHandler.Create)
	v1.GET("/rooms/:room", roomHandler.Info)
	v1.POST("/rooms/:room/authenticate", roomHandler.Authenticate)
	v1.POST("/rooms/:room/join", joinHandler.Join)
	v1.POST("/rooms/:room/tabs", tabHandler.Add)
	v1.GET("/rooms/:room/live", liveHandler.Stream)

	logger.Info("starting roomgate",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	srv.Run(":" + cfg.Port)

	return nil
}
