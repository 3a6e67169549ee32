package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teamevents/config"
	"teamevents/db"
	"teamevents/logger"
	"teamevents/middlewares"
	"teamevents/models"
	"teamevents/routes"
	"teamevents/utils"
)

func main() {
	cfg := config.Load()
	logger.Init("teamevents", cfg.LogLevel)

	// Postgres: users, teams, rosters
	sqldb, err := db.Open(cfg.PGDSN)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("postgres connect failed")
	}

	// Mongo: event documents
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mg, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("mongo connect failed")
	}
	if err := mg.Ping(ctx, nil); err != nil {
		logger.Log.Fatal().Err(err).Msg("mongo ping failed")
	}
	defer func() { _ = mg.Disconnect(context.Background()) }()

	eventsCol := mg.Database("teamevents").Collection("events")

	// Redis: response cache + quota
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)

	server := gin.Default()
	server.Use(middlewares.ResponseCache(rdb, cfg.CacheTTL))

	routes.RegisterRoutes(server,
		models.NewSQLUserRepository(sqldb),
		models.NewSQLTeamRepository(sqldb),
		models.NewMongoEventRepository(eventsCol),
		rdb, inv)

	logger.Log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := server.Run(cfg.HTTPAddr); err != nil {
		logger.Log.Fatal().Err(err).Msg("server stopped")
	}
}
