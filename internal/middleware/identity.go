package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/naivedh/roomgate/internal/models"
)

const ContextKeyIdentity = "identity"

// identityClaims is the payload of the surrounding account system's
// bearer token. This core never issues these; it only reads them.
type identityClaims struct {
	UserID       string `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Picture      string `json:"picture"`
	LoginService string `json:"login_service"`
	jwt.RegisteredClaims
}

// Identity returns middleware that resolves the optional authenticated
// caller. Unlike a conventional auth middleware it never aborts: rooms
// admit anonymous callers, so a missing or invalid bearer token simply
// means no identity is attached to the request.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims := &identityClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims,
			func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			},
		)
		if err != nil || !token.Valid || claims.UserID == "" {
			c.Next()
			return
		}

		c.Set(ContextKeyIdentity, &models.Identity{
			UserID:       claims.UserID,
			FirstName:    claims.FirstName,
			LastName:     claims.LastName,
			Picture:      claims.Picture,
			LoginService: claims.LoginService,
		})
		c.Next()
	}
}

// GetIdentity returns the authenticated caller, or nil for anonymous.
func GetIdentity(c *gin.Context) *models.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	ident, ok := val.(*models.Identity)
	if !ok {
		return nil
	}
	return ident
}
