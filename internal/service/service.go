// Package service holds the room access-control core: room lifecycle,
// the authorization gate, the join orchestrator, the tab gate, and the
// subscription gate. Storage, the media gateway, and the live feed are
// reached only through interfaces.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/naivedh/roomgate/internal/models"
)

// roomTTL is fixed at creation and never extended by activity.
const roomTTL = 4 * 24 * time.Hour

// mediaRole is the role every participant gets on the media server.
const mediaRole = "presenter"

// Credentials is everything a caller can present for a room. Which field
// matters depends on the room's scheme: Secret for secret-link rooms,
// AccessToken for password rooms. UserToken identifies a returning
// participant and is orthogonal to authorization.
type Credentials struct {
	Secret      string
	AccessToken string
	UserToken   string
}

// Publisher pushes an updated room state to live subscribers. Fanout is
// best-effort: implementations log failures instead of returning them,
// so a dead feed never fails a join or a tab append.
type Publisher interface {
	PublishRoom(ctx context.Context, room *models.Room)
}

// randomToken returns a hex-encoded secret of n random bytes. Used for
// room secrets and participant user tokens (20 bytes each).
func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("read random: %v", err))
	}
	return hex.EncodeToString(buf)
}
