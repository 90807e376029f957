package service

import (
	"context"
	"fmt"
	"time"

	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/models"
	"github.com/naivedh/roomgate/internal/repository"
	"github.com/naivedh/roomgate/internal/tabs"
	"github.com/naivedh/roomgate/internal/token"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-signing-secret"

func testCodec() *token.Codec {
	return token.NewCodec(testSecret, 1)
}

type fakeRooms struct {
	rooms map[string]*models.Room // keyed by id

	findErr   error
	insertErr error
	updateErr error

	inserted        []*models.Room
	appendCalls     int
	updateTabsCalls int
}

var _ repository.RoomRepository = (*fakeRooms)(nil)

func newFakeRooms(rooms ...*models.Room) *fakeRooms {
	f := &fakeRooms{rooms: map[string]*models.Room{}}
	for _, r := range rooms {
		f.rooms[r.ID] = r
	}
	return f
}

func (f *fakeRooms) FindByName(_ context.Context, name string) (*models.Room, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.rooms {
		if r.Name == name && !r.Archived {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRooms) FindByID(_ context.Context, id string) (*models.Room, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.rooms[id]
	if !ok || r.Archived {
		return nil, nil
	}
	return r, nil
}

func (f *fakeRooms) Insert(_ context.Context, room *models.Room) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, r := range f.rooms {
		if r.Name == room.Name && !r.Archived {
			return errs.ErrDuplicateRoomName
		}
	}
	f.rooms[room.ID] = room
	f.inserted = append(f.inserted, room)
	return nil
}

func (f *fakeRooms) UpdateTabs(_ context.Context, id string, t []models.Tab) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.rooms[id]
	if !ok || r.Archived {
		return errs.ErrRoomNotFound
	}
	f.updateTabsCalls++
	r.Tabs = t
	return nil
}

func (f *fakeRooms) AppendParticipant(_ context.Context, id string, p models.ParticipantProfile, ut models.UserToken) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.rooms[id]
	if !ok || r.Archived {
		return errs.ErrRoomNotFound
	}
	f.appendCalls++
	return nil
}

type fakeGateway struct {
	roomID  string
	roomErr error

	tokenErr error

	createRoomCalls  int
	createTokenCalls int
	lastTokenUser    string
	lastTokenRole    string
}

func (g *fakeGateway) CreateRoom(_ context.Context, _ string) (string, error) {
	g.createRoomCalls++
	if g.roomErr != nil {
		return "", g.roomErr
	}
	if g.roomID == "" {
		return "gw-room-1", nil
	}
	return g.roomID, nil
}

func (g *fakeGateway) CreateToken(_ context.Context, _, userID, role string) (string, error) {
	g.createTokenCalls++
	if g.tokenErr != nil {
		return "", g.tokenErr
	}
	g.lastTokenUser = userID
	g.lastTokenRole = role
	return fmt.Sprintf("media-token-%d", g.createTokenCalls), nil
}

type fakePublisher struct {
	published []*models.Room
}

func (p *fakePublisher) PublishRoom(_ context.Context, room *models.Room) {
	p.published = append(p.published, room)
}

func secretRoom(id, name string) *models.Room {
	now := time.Now()
	return &models.Room{
		ID:           id,
		Name:         name,
		Secret:       "0123456789abcdef0123456789abcdef01234567",
		DefaultTabID: tabs.DefaultTabID,
		Tabs:         tabs.Defaults(),
		Participants: []models.ParticipantProfile{},
		UserTokens:   []models.UserToken{},
		CreatedAt:    now,
		ValidTill:    now.Add(roomTTL),
	}
}

func passwordRoom(id, name, password string) *models.Room {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	now := time.Now()
	return &models.Room{
		ID:              id,
		Name:            name,
		PasswordEnabled: true,
		PasswordHash:    string(hash),
		DefaultTabID:    tabs.DefaultTabID,
		Tabs:            tabs.Defaults(),
		Participants:    []models.ParticipantProfile{},
		UserTokens:      []models.UserToken{},
		CreatedAt:       now,
		ValidTill:       now.Add(roomTTL),
	}
}
