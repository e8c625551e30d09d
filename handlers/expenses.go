package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ddebortoli/darwin-ia-challenge/logger"
	"github.com/ddebortoli/darwin-ia-challenge/models"
)

const defaultExpenseLimit = 10

// GetCategories handles GET /categories.
func (h *Handlers) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoriesResponse{Categories: models.CategoryNames()})
}

// GetExpenses handles GET /expenses/:external_user_id.
func (h *Handlers) GetExpenses(c *gin.Context) {
	externalUserID := c.Param("external_user_id")

	limit := defaultExpenseLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	expenses, err := h.reader.ListExpenses(c.Request.Context(), externalUserID, limit)
	if err != nil {
		logger.Get().Error("failed to list expenses",
			zap.String("external_user_id", externalUserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch expenses"})
		return
	}

	items := make([]models.ExpenseItem, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, models.ExpenseItem{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Category:    string(e.Category),
			AddedAt:     e.AddedAt,
		})
	}

	c.JSON(http.StatusOK, models.ExpensesResponse{Expenses: items, Count: len(items)})
}

// GetStats handles GET /stats/:external_user_id.
func (h *Handlers) GetStats(c *gin.Context) {
	externalUserID := c.Param("external_user_id")

	stats, err := h.reader.Stats(c.Request.Context(), externalUserID)
	if err != nil {
		logger.Get().Error("failed to aggregate expenses",
			zap.String("external_user_id", externalUserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
