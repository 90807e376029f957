package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naivedh/roomgate/internal/service"
	"go.uber.org/zap"
)

type TabHandler struct {
	tabs   *service.TabService
	logger *zap.Logger
}

func NewTabHandler(tabs *service.TabService, logger *zap.Logger) *TabHandler {
	return &TabHandler{tabs: tabs, logger: logger}
}

type addTabRequest struct {
	credentialsBody
	TabID int `json:"tabId" binding:"required"`
}

// Add handles POST /v1/rooms/:room/tabs, where :room is the room id.
// Re-adding a tab the room already has is a 204, same as the first add.
func (h *TabHandler) Add(c *gin.Context) {
	var req addTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.tabs.Add(c.Request.Context(), c.Param("room"), service.Credentials{
		Secret:      req.Secret,
		AccessToken: req.AccessToken,
		UserToken:   req.UserToken,
	}, req.TabID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
