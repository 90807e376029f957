package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/gateway"
	"github.com/naivedh/roomgate/internal/models"
	"github.com/naivedh/roomgate/internal/repository"
	"go.uber.org/zap"
)

// JoinRequest carries the caller's credentials plus the profile fields
// needed on a first join.
type JoinRequest struct {
	Credentials Credentials
	DisplayName string
	AvatarColor string
}

// JoinResult is the credential exchange's outcome: a fresh single-use
// media session token, the resolved participant id, and the long-lived
// user token to present on future rejoins.
type JoinResult struct {
	MediaToken string `json:"mediaToken"`
	UserID     string `json:"userId"`
	UserToken  string `json:"userToken"`
}

// JoinService reconciles participant identity and exchanges a room
// credential for a media session credential.
type JoinService struct {
	rooms  repository.RoomRepository
	gw     gateway.MediaGateway
	gate   *Gate
	feed   Publisher
	logger *zap.Logger
}

func NewJoinService(rooms repository.RoomRepository, gw gateway.MediaGateway, gate *Gate, feed Publisher, logger *zap.Logger) *JoinService {
	return &JoinService{
		rooms:  rooms,
		gw:     gw,
		gate:   gate,
		feed:   feed,
		logger: logger,
	}
}

// Join admits a caller into a room.
//
// A returning participant is recognized either by the user token minted
// at their first join or, failing that, by a matching stable account
// identity — token match takes precedence. Every join, returning or new,
// mints a fresh media session token; only the identity secret is reused.
//
// The media token is minted before the participant record is persisted:
// a gateway failure never leaves a participant without a usable session.
func (s *JoinService) Join(ctx context.Context, roomID string, req JoinRequest, ident *models.Identity) (*JoinResult, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errs.ErrRoomNotFound
	}

	if !s.gate.Authorize(room, req.Credentials) {
		return nil, errs.ErrUnauthorized
	}

	if existing, ok := resolveReturning(room, req.Credentials, ident); ok {
		mediaToken, err := s.gw.CreateToken(ctx, room.ID, existing.UserID, mediaRole)
		if err != nil {
			return nil, err
		}
		return &JoinResult{
			MediaToken: mediaToken,
			UserID:     existing.UserID,
			UserToken:  existing.UserToken,
		}, nil
	}

	if strings.TrimSpace(req.DisplayName) == "" || req.AvatarColor == "" {
		return nil, errs.ErrMissingProfileFields
	}

	profile := buildProfile(ident, req.DisplayName, req.AvatarColor)
	userToken := models.UserToken{
		UserID:    profile.UserID,
		UserToken: randomToken(20),
	}

	mediaToken, err := s.gw.CreateToken(ctx, room.ID, profile.UserID, mediaRole)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.AppendParticipant(ctx, room.ID, profile, userToken); err != nil {
		return nil, err
	}

	room.Participants = append(room.Participants, profile)
	room.UserTokens = append(room.UserTokens, userToken)
	s.feed.PublishRoom(ctx, room)

	s.logger.Info("participant joined",
		zap.String("room", room.Name),
		zap.String("user_id", profile.UserID),
	)

	return &JoinResult{
		MediaToken: mediaToken,
		UserID:     profile.UserID,
		UserToken:  userToken.UserToken,
	}, nil
}

// resolveReturning finds a prior identity for the caller. Token match
// first, then stable account id.
func resolveReturning(room *models.Room, creds Credentials, ident *models.Identity) (models.UserToken, bool) {
	if creds.UserToken != "" {
		for _, ut := range room.UserTokens {
			if ut.UserToken == creds.UserToken {
				return ut, true
			}
		}
	}
	if ident != nil {
		for _, ut := range room.UserTokens {
			if ut.UserID == ident.UserID {
				return ut, true
			}
		}
	}
	return models.UserToken{}, false
}

// buildProfile constructs a fresh participant profile. The identity's
// fields are copied, never aliased, so the caller's account record stays
// untouched.
func buildProfile(ident *models.Identity, displayName, avatarColor string) models.ParticipantProfile {
	displayName = strings.TrimSpace(displayName)

	if ident != nil {
		name := ident.FirstName
		if name == "" {
			name = displayName
		}
		ini := initials(ident.FirstName, ident.LastName)
		if ini == "" {
			ini = initialsFromName(name)
		}
		return models.ParticipantProfile{
			UserID:       ident.UserID,
			DisplayName:  name,
			Initials:     ini,
			AvatarColor:  avatarColor,
			LoginService: ident.LoginService,
			Picture:      ident.Picture,
		}
	}

	return models.ParticipantProfile{
		UserID:      uuid.NewString(),
		DisplayName: displayName,
		Initials:    initialsFromName(displayName),
		AvatarColor: avatarColor,
	}
}

// initials derives "JD" from ("Jane", "Doe"); empty when both are empty.
func initials(first, last string) string {
	var b strings.Builder
	for _, s := range []string{first, last} {
		for _, r := range s {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// initialsFromName derives initials from the first two words of a free-
// form display name.
func initialsFromName(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}
