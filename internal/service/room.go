package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/gateway"
	"github.com/naivedh/roomgate/internal/models"
	"github.com/naivedh/roomgate/internal/repository"
	"github.com/naivedh/roomgate/internal/tabs"
	"github.com/naivedh/roomgate/internal/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Share schemes. Fixed per room at creation.
const (
	ShareSecretLink = "SECRET_LINK"
	SharePassword   = "PASSWORD"
)

// Normalized names: 2-63 chars, lowercase alphanumerics and hyphens,
// leading alphanumeric.
var nameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

// CreateSpec is the caller's room specification. The zero value is a
// valid default: unnamed, secret-link, no password.
type CreateSpec struct {
	Name        string `json:"name"`
	ShareChoice string `json:"shareChoice"`
	Password    string `json:"password"`
}

// CreateResult is what room creation hands back. AccessToken is set only
// for password rooms: a signed token valid until the room expires, so the
// creator doesn't have to authenticate against their own password.
type CreateResult struct {
	Name            string `json:"name"`
	Secret          string `json:"secret,omitempty"`
	PasswordEnabled bool   `json:"passwordEnabled"`
	AccessToken     string `json:"accessToken,omitempty"`
}

// RoomService is the room lifecycle manager: creation with uniqueness and
// expiry rules, scheme selection, and the password-for-token exchange.
type RoomService struct {
	rooms  repository.RoomRepository
	gw     gateway.MediaGateway
	codec  *token.Codec
	cost   int
	logger *zap.Logger
}

func NewRoomService(rooms repository.RoomRepository, gw gateway.MediaGateway, codec *token.Codec, bcryptCost int, logger *zap.Logger) *RoomService {
	return &RoomService{
		rooms:  rooms,
		gw:     gw,
		codec:  codec,
		cost:   bcryptCost,
		logger: logger,
	}
}

// Create provisions a new room.
//
// The name uniqueness check-then-insert here is not atomic; the store's
// partial unique index is the backstop, and Insert reports the loser of
// a race as ErrDuplicateRoomName.
func (s *RoomService) Create(ctx context.Context, spec *CreateSpec) (*CreateResult, error) {
	// Copy before patching defaults; the caller's spec is never mutated.
	sp := CreateSpec{}
	if spec != nil {
		sp = *spec
	}
	if sp.ShareChoice == "" {
		sp.ShareChoice = ShareSecretLink
	}

	switch sp.ShareChoice {
	case ShareSecretLink:
	case SharePassword:
		if sp.Password == "" {
			return nil, fmt.Errorf("%w: password scheme requires a password", errs.ErrInvalidSpecification)
		}
	default:
		return nil, fmt.Errorf("%w: unknown share choice %q", errs.ErrInvalidSpecification, sp.ShareChoice)
	}

	name := sp.Name
	if name == "" {
		name = tabs.RandomName()
	}
	name = normalizeName(name)
	if !nameRE.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidName, name)
	}

	existing, err := s.rooms.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrDuplicateRoomName
	}

	// The gateway owns the authoritative room id; without it there is no
	// room to persist.
	id, err := s.gw.CreateRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	room := &models.Room{
		ID:           id,
		Name:         name,
		DefaultTabID: tabs.DefaultTabID,
		Tabs:         tabs.Defaults(),
		Participants: []models.ParticipantProfile{},
		UserTokens:   []models.UserToken{},
		CreatedAt:    now,
		ValidTill:    now.Add(roomTTL),
	}

	if sp.ShareChoice == SharePassword {
		hash, err := bcrypt.GenerateFromPassword([]byte(sp.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		room.PasswordEnabled = true
		room.PasswordHash = string(hash)
	} else {
		room.Secret = randomToken(20)
	}

	if err := s.rooms.Insert(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room", room.Name),
		zap.Bool("password_enabled", room.PasswordEnabled),
	)

	result := &CreateResult{
		Name:            room.Name,
		Secret:          room.Secret,
		PasswordEnabled: room.PasswordEnabled,
	}
	if room.PasswordEnabled {
		accessToken, err := s.codec.Encode(room.ID, room.ValidTill)
		if err != nil {
			return nil, fmt.Errorf("issue access token: %w", err)
		}
		result.AccessToken = accessToken
	}
	return result, nil
}

// AuthenticatePassword exchanges a password for a signed access token
// bound to the room and valid until the room expires. A wrong password
// is not an error: it returns an empty token, the expected negative.
func (s *RoomService) AuthenticatePassword(ctx context.Context, name, password string) (string, error) {
	room, err := s.rooms.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	if room == nil {
		return "", errs.ErrRoomNotFound
	}

	if !room.PasswordEnabled {
		return "", nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	return s.codec.Encode(room.ID, room.ValidTill)
}

// normalizeName trims, lowercases, and collapses whitespace runs to
// single hyphens.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "-")
}
