package main

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ddebortoli/darwin-ia-challenge/config"
	"github.com/ddebortoli/darwin-ia-challenge/connector"
	"github.com/ddebortoli/darwin-ia-challenge/logger"
	"github.com/ddebortoli/darwin-ia-challenge/middleware"
)

func main() {
	cfg, err := config.LoadConnector()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(false, logger.LogLevel(cfg.LogLevel)); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Get().Fatal("failed to connect to Telegram bot", zap.Error(err))
	}

	me, err := bot.GetMe()
	if err != nil {
		logger.Get().Fatal("failed to verify bot identity", zap.Error(err))
	}
	logger.Get().Info("bot connected", zap.String("username", me.UserName))

	forwarder := connector.NewForwarder(cfg.BotServiceURL, cfg.InternalAPIKey, cfg.RequestTimeout)
	relay := connector.NewRelay(bot, forwarder)

	router := gin.Default()
	router.Use(middleware.Cors)
	relay.RegisterRoutes(router)

	logger.Get().Info("starting connector service", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
