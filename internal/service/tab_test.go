package service

import (
	"context"
	"testing"

	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTabFixture(rooms *fakeRooms) (*TabService, *fakePublisher) {
	feed := &fakePublisher{}
	return NewTabService(rooms, NewGate(testCodec()), feed, zap.NewNop()), feed
}

func TestTabService_Add(t *testing.T) {
	t.Parallel()
	room := secretRoom("room-1", "team-sync")
	rooms := newFakeRooms(room)
	s, feed := newTabFixture(rooms)
	creds := Credentials{Secret: room.Secret}

	require.NoError(t, s.Add(context.Background(), "room-1", creds, 11))

	require.Equal(t, 1, rooms.updateTabsCalls)
	require.Len(t, room.Tabs, 4)
	last := room.Tabs[len(room.Tabs)-1]
	require.Equal(t, 11, last.TabID)
	require.Equal(t, "Whiteboard", last.Name)
	require.Len(t, feed.published, 1)
}

func TestTabService_Add_Idempotent(t *testing.T) {
	t.Parallel()
	room := secretRoom("room-1", "team-sync")
	rooms := newFakeRooms(room)
	s, feed := newTabFixture(rooms)
	creds := Credentials{Secret: room.Secret}

	require.NoError(t, s.Add(context.Background(), "room-1", creds, 11))
	before := append([]int{}, tabIDs(room.Tabs)...)

	// Second add of the same tab: no write, no publish, no error.
	require.NoError(t, s.Add(context.Background(), "room-1", creds, 11))
	require.Equal(t, 1, rooms.updateTabsCalls)
	require.Equal(t, before, tabIDs(room.Tabs))
	require.Len(t, feed.published, 1)

	// Default tabs behave the same.
	require.NoError(t, s.Add(context.Background(), "room-1", creds, 1))
	require.Equal(t, 1, rooms.updateTabsCalls)
}

func TestTabService_Add_UnknownTab(t *testing.T) {
	t.Parallel()
	room := secretRoom("room-1", "team-sync")
	rooms := newFakeRooms(room)
	s, _ := newTabFixture(rooms)

	err := s.Add(context.Background(), "room-1", Credentials{Secret: room.Secret}, 999)
	require.ErrorIs(t, err, errs.ErrUnknownTab)
	require.Zero(t, rooms.updateTabsCalls)
}

func TestTabService_Add_Unauthorized(t *testing.T) {
	t.Parallel()
	room := secretRoom("room-1", "team-sync")
	rooms := newFakeRooms(room)
	s, _ := newTabFixture(rooms)

	err := s.Add(context.Background(), "room-1", Credentials{Secret: "wrong"}, 11)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestTabService_Add_RoomNotFound(t *testing.T) {
	t.Parallel()
	s, _ := newTabFixture(newFakeRooms())

	err := s.Add(context.Background(), "missing", Credentials{}, 11)
	require.ErrorIs(t, err, errs.ErrRoomNotFound)
}

func TestTabService_Add_ArchivedRoomInvisible(t *testing.T) {
	t.Parallel()
	room := secretRoom("room-1", "team-sync")
	room.Archived = true
	rooms := newFakeRooms(room)
	s, _ := newTabFixture(rooms)

	err := s.Add(context.Background(), "room-1", Credentials{Secret: room.Secret}, 11)
	require.ErrorIs(t, err, errs.ErrRoomNotFound)
}

func tabIDs(tabs []models.Tab) []int {
	ids := make([]int, 0, len(tabs))
	for _, t := range tabs {
		ids = append(ids, t.TabID)
	}
	return ids
}
