package connector

import (
	"context"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ddebortoli/darwin-ia-challenge/logger"
	"github.com/ddebortoli/darwin-ia-challenge/models"
)

const serviceName = "connector-service"

// BotClient is the slice of the Telegram Bot API the relay uses.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetWebhookInfo() (tgbotapi.WebhookInfo, error)
	GetMe() (tgbotapi.User, error)
}

// Processor forwards a message to the expense pipeline.
type Processor interface {
	ProcessExpense(ctx context.Context, externalUserID, text string) (*models.ProcessResponse, error)
}

// Relay translates Telegram webhook updates into bot service calls and
// replies back to the originating chat. It holds no state of its own.
type Relay struct {
	bot       BotClient
	processor Processor
}

// NewRelay creates a relay on the given Telegram client and processor.
func NewRelay(bot BotClient, processor Processor) *Relay {
	return &Relay{bot: bot, processor: processor}
}

// RegisterRoutes mounts the webhook and management endpoints.
func (r *Relay) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", r.Health)
	router.POST("/webhook", r.HandleWebhook)
	router.POST("/set-webhook", r.SetWebhook)
	router.GET("/webhook-info", r.WebhookInfo)
	router.DELETE("/delete-webhook", r.DeleteWebhook)
	router.GET("/bot-info", r.BotInfo)
}

// HandleWebhook handles one Telegram update. Updates without a text message
// are acknowledged and dropped. A failure to reach the bot service or to
// deliver the reply is answered with 500 so Telegram retries the update.
func (r *Relay) HandleWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Get().Error("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	if update.Message == nil || update.Message.Text == "" || update.Message.From == nil || update.Message.Chat == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	chatID := update.Message.Chat.ID
	externalUserID := strconv.FormatInt(update.Message.From.ID, 10)

	logger.Get().Info("received message",
		zap.String("external_user_id", externalUserID),
		zap.Int64("chat_id", chatID))

	result, err := r.processor.ProcessExpense(c.Request.Context(), externalUserID, update.Message.Text)
	if err != nil {
		logger.Get().Error("failed to forward message to bot service",
			zap.String("external_user_id", externalUserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, result.Message)); err != nil {
		logger.Get().Error("failed to send reply",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deliver reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetWebhook points the Telegram webhook at the given URL.
func (r *Relay) SetWebhook(c *gin.Context) {
	webhookURL := c.Query("webhook_url")
	if webhookURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook_url query parameter is required"})
		return
	}

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook URL"})
		return
	}

	if _, err := r.bot.Request(wh); err != nil {
		logger.Get().Error("failed to set webhook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to set webhook"})
		return
	}

	logger.Get().Info("webhook set successfully")
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Webhook set successfully"})
}

// WebhookInfo returns the current Telegram webhook state.
func (r *Relay) WebhookInfo(c *gin.Context) {
	info, err := r.bot.GetWebhookInfo()
	if err != nil {
		logger.Get().Error("failed to get webhook info", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to get webhook info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":                    info.URL,
		"has_custom_certificate": info.HasCustomCertificate,
		"pending_update_count":   info.PendingUpdateCount,
		"last_error_date":        info.LastErrorDate,
		"last_error_message":     info.LastErrorMessage,
		"max_connections":        info.MaxConnections,
		"allowed_updates":        info.AllowedUpdates,
	})
}

// DeleteWebhook removes the Telegram webhook.
func (r *Relay) DeleteWebhook(c *gin.Context) {
	if _, err := r.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		logger.Get().Error("failed to delete webhook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete webhook"})
		return
	}

	logger.Get().Info("webhook deleted successfully")
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Webhook deleted successfully"})
}

// BotInfo returns the connected bot's identity.
func (r *Relay) BotInfo(c *gin.Context) {
	me, err := r.bot.GetMe()
	if err != nil {
		logger.Get().Error("failed to get bot info", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to get bot info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         me.ID,
		"username":   me.UserName,
		"first_name": me.FirstName,
	})
}

// Health reports service liveness.
func (r *Relay) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC(),
	})
}
