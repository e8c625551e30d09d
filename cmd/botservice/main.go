package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ddebortoli/darwin-ia-challenge/config"
	"github.com/ddebortoli/darwin-ia-challenge/db"
	"github.com/ddebortoli/darwin-ia-challenge/handlers"
	"github.com/ddebortoli/darwin-ia-challenge/llm"
	"github.com/ddebortoli/darwin-ia-challenge/logger"
	"github.com/ddebortoli/darwin-ia-challenge/middleware"
	"github.com/ddebortoli/darwin-ia-challenge/service"
)

func main() {
	cfg, err := config.LoadBotService()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(false, logger.LogLevel(cfg.LogLevel)); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	store, err := db.New(cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Get().Fatal("failed to run migrations", zap.Error(err))
	}

	chat := llm.NewClient(cfg.LLM)
	extractor := llm.NewExtractor(chat)
	processor := service.NewProcessor(store, extractor)

	router := gin.Default()
	router.Use(middleware.Cors)

	h := handlers.New(processor, store)
	h.RegisterRoutes(router, cfg.InternalAPIKey)

	logger.Get().Info("starting bot service", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
