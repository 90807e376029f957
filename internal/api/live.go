package api

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/naivedh/roomgate/internal/live"
	"github.com/naivedh/roomgate/internal/service"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// LiveHandler serves the live room-state feed over a websocket. The
// subscription is gated by the same authorization decision as join and
// tab mutation; a denied subscriber gets an empty feed, not an error.
type LiveHandler struct {
	info     *service.InfoService
	feed     *live.Feed
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewLiveHandler(info *service.InfoService, feed *live.Feed, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{
		info:   info,
		feed:   feed,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Stream handles GET /v1/rooms/:room/live, where :room is the room name.
// Credentials travel in the query string — websocket clients can't set
// request bodies on the handshake.
func (h *LiveHandler) Stream(c *gin.Context) {
	creds := service.Credentials{
		Secret:      c.Query("secret"),
		AccessToken: c.Query("access_token"),
		UserToken:   c.Query("user_token"),
	}

	room, err := h.info.AuthorizeSubscription(c.Request.Context(), c.Param("room"), creds)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// DENY: open and immediately close cleanly. The subscriber observes
	// an empty feed.
	if room == nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeTimeout))
		return
	}

	snapshot, err := json.Marshal(room.Snapshot())
	if err != nil {
		h.logger.Error("marshal room snapshot", zap.Error(err))
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
		return
	}

	sub := h.feed.Subscribe(c.Request.Context(), room.ID)
	defer sub.Close()

	// Drain reads so the close handshake is observed; the feed is
	// one-way.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		}
	}
}
