package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naivedh/roomgate/internal/errs"
	"go.uber.org/zap"
)

// writeError maps the core's sentinel errors to HTTP statuses. Unmapped
// errors are logged and surfaced as a generic 500 — internal detail
// never reaches the client.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidSpecification),
		errors.Is(err, errs.ErrInvalidName),
		errors.Is(err, errs.ErrMissingProfileFields),
		errors.Is(err, errs.ErrUnknownTab):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrUnauthorized),
		errors.Is(err, errs.ErrTokenRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrDuplicateRoomName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrGatewayUnavailable):
		logger.Error("gateway failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "media gateway unavailable"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// credentialsBody is the credential triple accepted in request bodies.
type credentialsBody struct {
	Secret      string `json:"secret"`
	AccessToken string `json:"accessToken"`
	UserToken   string `json:"userToken"`
}
