package service

import (
	"context"

	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/models"
	"github.com/naivedh/roomgate/internal/repository"
)

// InfoService serves the read path: the pre-join room summary and the
// authorization gate in front of live subscriptions.
type InfoService struct {
	rooms repository.RoomRepository
	gate  *Gate
}

func NewInfoService(rooms repository.RoomRepository, gate *Gate) *InfoService {
	return &InfoService{rooms: rooms, gate: gate}
}

// GetRoomInfo returns the pre-join summary: which scheme protects the
// room, and whether the presented user token already identifies a
// participant. No authorization required — this is what a join screen
// renders before any credential is entered.
func (s *InfoService) GetRoomInfo(ctx context.Context, name, userToken string) (*models.RoomInfo, error) {
	room, err := s.rooms.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errs.ErrRoomNotFound
	}

	existing := false
	if userToken != "" {
		for _, ut := range room.UserTokens {
			if ut.UserToken == userToken {
				existing = true
				break
			}
		}
	}

	return &models.RoomInfo{
		Name:            room.Name,
		PasswordEnabled: room.PasswordEnabled,
		ExistingUser:    existing,
	}, nil
}

// AuthorizeSubscription gates a live-state subscription request.
//
// A password room with no token presented is ErrTokenRequired. A failed
// gate check is not an error: it returns (nil, nil), and the caller
// serves an empty feed.
func (s *InfoService) AuthorizeSubscription(ctx context.Context, name string, creds Credentials) (*models.Room, error) {
	room, err := s.rooms.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errs.ErrRoomNotFound
	}

	if room.PasswordEnabled && creds.AccessToken == "" {
		return nil, errs.ErrTokenRequired
	}

	if !s.gate.Authorize(room, creds) {
		return nil, nil
	}
	return room, nil
}
