// Package live fans room-state updates out to subscribers. Services
// publish a public snapshot after every mutation; each websocket
// subscriber holds a redis subscription on the room's channel, so fanout
// works across every server instance sharing the redis.
package live

import (
	"context"
	"encoding/json"

	"github.com/naivedh/roomgate/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "room.updates."

// Channel is the redis pub/sub channel carrying a room's snapshots.
func Channel(roomID string) string {
	return channelPrefix + roomID
}

type Feed struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewFeed(rdb *redis.Client, logger *zap.Logger) *Feed {
	return &Feed{rdb: rdb, logger: logger}
}

// PublishRoom pushes the room's public snapshot to its channel. Fanout
// is best-effort: failures are logged, never returned — a dead feed must
// not fail the mutation that triggered it.
func (f *Feed) PublishRoom(ctx context.Context, room *models.Room) {
	payload, err := json.Marshal(room.Snapshot())
	if err != nil {
		f.logger.Error("marshal room snapshot", zap.String("room_id", room.ID), zap.Error(err))
		return
	}
	if err := f.rdb.Publish(ctx, Channel(room.ID), payload).Err(); err != nil {
		f.logger.Warn("publish room update", zap.String("room_id", room.ID), zap.Error(err))
	}
}

// Subscribe opens a subscription on the room's channel. The caller owns
// the returned PubSub and must Close it.
func (f *Feed) Subscribe(ctx context.Context, roomID string) *redis.PubSub {
	return f.rdb.Subscribe(ctx, Channel(roomID))
}
