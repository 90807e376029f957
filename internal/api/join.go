package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naivedh/roomgate/internal/middleware"
	"github.com/naivedh/roomgate/internal/service"
	"go.uber.org/zap"
)

type JoinHandler struct {
	joins  *service.JoinService
	logger *zap.Logger
}

func NewJoinHandler(joins *service.JoinService, logger *zap.Logger) *JoinHandler {
	return &JoinHandler{joins: joins, logger: logger}
}

type joinRequest struct {
	credentialsBody
	DisplayName string `json:"displayName"`
	AvatarColor string `json:"avatarColor"`
}

// Join handles POST /v1/rooms/:room/join, where :room is the room id.
// DisplayName and AvatarColor are required only for first-time joins;
// the service decides, because only it knows whether the caller is a
// returning participant.
func (h *JoinHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.joins.Join(c.Request.Context(), c.Param("room"), service.JoinRequest{
		Credentials: service.Credentials{
			Secret:      req.Secret,
			AccessToken: req.AccessToken,
			UserToken:   req.UserToken,
		},
		DisplayName: req.DisplayName,
		AvatarColor: req.AvatarColor,
	}, middleware.GetIdentity(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
