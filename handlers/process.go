package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ddebortoli/darwin-ia-challenge/logger"
	"github.com/ddebortoli/darwin-ia-challenge/models"
)

// ProcessExpense handles POST /process-expense. The response is always 200
// with a success flag; system faults are logged but the caller only sees the
// user-safe reply text.
func (h *Handlers) ProcessExpense(c *gin.Context) {
	var req models.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.processor.Process(c.Request.Context(), req.ExternalUserID, req.Message)
	if err != nil {
		logger.Get().Error("process pipeline fault",
			zap.String("external_user_id", req.ExternalUserID),
			zap.String("request_id", c.Request.Header.Get("X-Request-ID")),
			zap.Error(err))
	}

	resp := models.ProcessResponse{
		Success: result.Success,
		Message: result.Reply,
	}
	if result.Success {
		category := string(result.Category)
		resp.Category = &category
		resp.Description = &result.Description
		resp.Amount = &result.Amount
	}

	c.JSON(http.StatusOK, resp)
}
