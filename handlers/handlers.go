package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ddebortoli/darwin-ia-challenge/middleware"
	"github.com/ddebortoli/darwin-ia-challenge/models"
	"github.com/ddebortoli/darwin-ia-challenge/service"
)

const serviceName = "bot-service"

// ExpenseProcessor runs the processing pipeline for one message.
type ExpenseProcessor interface {
	Process(ctx context.Context, externalUserID, text string) (*service.Result, error)
}

// ExpenseReader serves the read-side endpoints.
type ExpenseReader interface {
	ListExpenses(ctx context.Context, externalID string, limit int) ([]models.Expense, error)
	Stats(ctx context.Context, externalID string) (*models.StatsSummary, error)
}

// Handlers holds dependencies for the bot service HTTP surface.
type Handlers struct {
	processor ExpenseProcessor
	reader    ExpenseReader
}

// New creates a Handlers instance.
func New(processor ExpenseProcessor, reader ExpenseReader) *Handlers {
	return &Handlers{processor: processor, reader: reader}
}

// RegisterRoutes mounts all bot service routes. Everything except /health
// sits behind the internal API key.
func (h *Handlers) RegisterRoutes(router *gin.Engine, apiKey string) {
	router.GET("/health", h.Health)

	authed := router.Group("/", middleware.InternalAuth(apiKey))
	{
		authed.POST("/process-expense", h.ProcessExpense)
		authed.GET("/categories", h.GetCategories)
		authed.GET("/expenses/:external_user_id", h.GetExpenses)
		authed.GET("/stats/:external_user_id", h.GetStats)
	}
}

// Health reports service liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC(),
	})
}
