package service

import (
	"crypto/subtle"
	"time"

	"github.com/naivedh/roomgate/internal/models"
	"github.com/naivedh/roomgate/internal/token"
)

// Gate is the single authorization decision shared by join, tab mutation,
// and live subscription. The same (room, credentials) pair yields the
// same outcome in all three paths.
type Gate struct {
	codec *token.Codec
}

func NewGate(codec *token.Codec) *Gate {
	return &Gate{codec: codec}
}

// Authorize decides ALLOW (true) or DENY (false).
//
// Password rooms accept only a signed access token whose version matches
// the running system, whose expiry is still in the future at decision
// time, and whose room binding matches. A token that fails to decode —
// bad signature, malformed payload — is a plain DENY, never an error.
//
// Secret-link rooms accept possession of the room secret.
func (g *Gate) Authorize(room *models.Room, creds Credentials) bool {
	if room.PasswordEnabled {
		claims, err := g.codec.Decode(creds.AccessToken)
		if err != nil {
			return false
		}
		if claims.Version != g.codec.Version() {
			return false
		}
		if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
			return false
		}
		return claims.RoomID == room.ID
	}

	if creds.Secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(creds.Secret), []byte(room.Secret)) == 1
}
