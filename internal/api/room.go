package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naivedh/roomgate/internal/service"
	"go.uber.org/zap"
)

// RoomHandler serves room creation, password authentication, and the
// pre-join room summary. Creation and authentication are public: a caller
// has no room credential yet, that's what these endpoints produce.
type RoomHandler struct {
	rooms  *service.RoomService
	info   *service.InfoService
	logger *zap.Logger
}

func NewRoomHandler(rooms *service.RoomService, info *service.InfoService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, info: info, logger: logger}
}

// Create handles POST /v1/rooms. The body is optional; an empty body
// means the default specification (unnamed, secret-link).
func (h *RoomHandler) Create(c *gin.Context) {
	var spec service.CreateSpec
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&spec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.rooms.Create(c.Request.Context(), &spec)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

type authenticateRequest struct {
	Password string `json:"password" binding:"required"`
}

// Authenticate handles POST /v1/rooms/:room/authenticate. A wrong
// password is a 200 with a null token — absence of a token is the denial
// signal, not an error status.
func (h *RoomHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.rooms.AuthenticatePassword(c.Request.Context(), c.Param("room"), req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if accessToken == "" {
		c.JSON(http.StatusOK, gin.H{"token": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": accessToken})
}

// Info handles GET /v1/rooms/:room. The optional user_token query reports
// whether the caller is already a participant.
func (h *RoomHandler) Info(c *gin.Context) {
	info, err := h.info.GetRoomInfo(c.Request.Context(), c.Param("room"), c.Query("user_token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
