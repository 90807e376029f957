package service

import (
	"context"
	"fmt"

	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/models"
	"github.com/naivedh/roomgate/internal/repository"
	"github.com/naivedh/roomgate/internal/tabs"
	"go.uber.org/zap"
)

// TabService validates and appends feature tabs to a room's active list.
type TabService struct {
	rooms  repository.RoomRepository
	gate   *Gate
	feed   Publisher
	logger *zap.Logger
}

func NewTabService(rooms repository.RoomRepository, gate *Gate, feed Publisher, logger *zap.Logger) *TabService {
	return &TabService{
		rooms:  rooms,
		gate:   gate,
		feed:   feed,
		logger: logger,
	}
}

// Add appends the tab with the given id, idempotently: a tab already in
// the room leaves the list untouched and returns no error.
func (s *TabService) Add(ctx context.Context, roomID string, creds Credentials, tabID int) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return errs.ErrRoomNotFound
	}

	if !s.gate.Authorize(room, creds) {
		return errs.ErrUnauthorized
	}

	if room.HasTab(tabID) {
		return nil
	}

	tab, ok := tabs.Lookup(tabID)
	if !ok {
		return fmt.Errorf("%w: id %d", errs.ErrUnknownTab, tabID)
	}

	updated := append(append([]models.Tab{}, room.Tabs...), tab)
	if err := s.rooms.UpdateTabs(ctx, room.ID, updated); err != nil {
		return err
	}

	room.Tabs = updated
	s.feed.PublishRoom(ctx, room)

	s.logger.Info("tab added",
		zap.String("room", room.Name),
		zap.Int("tab_id", tabID),
	)
	return nil
}
