package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/models"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RoomStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewRoomStore(mock), mock
}

func sampleRoom() *models.Room {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &models.Room{
		ID:           "room-1",
		Name:         "team-sync",
		Secret:       "s3cret",
		DefaultTabID: 1,
		Tabs:         []models.Tab{{TabID: 1, Name: "Lobby", Icon: "home"}},
		Participants: []models.ParticipantProfile{},
		UserTokens:   []models.UserToken{},
		CreatedAt:    now,
		ValidTill:    now.Add(96 * time.Hour),
	}
}

func roomRows(r *models.Room) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "password_enabled", "password_hash", "secret",
		"default_tab_id", "tabs", "participants", "user_tokens",
		"created_at", "valid_till", "archived",
	}).AddRow(
		r.ID, r.Name, r.PasswordEnabled, r.PasswordHash, r.Secret,
		r.DefaultTabID, r.Tabs, r.Participants, r.UserTokens,
		r.CreatedAt, r.ValidTill, r.Archived,
	)
}

func TestRoomStore_FindByName(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	want := sampleRoom()

	mock.ExpectQuery(`FROM rooms\s+WHERE name = \$1 AND NOT archived`).
		WithArgs("team-sync").
		WillReturnRows(roomRows(want))

	got, err := s.FindByName(context.Background(), "team-sync")
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomStore_FindByName_NotFound(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM rooms\s+WHERE name = \$1 AND NOT archived`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.FindByName(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRoomStore_FindByID(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	want := sampleRoom()

	mock.ExpectQuery(`FROM rooms\s+WHERE id = \$1 AND NOT archived`).
		WithArgs("room-1").
		WillReturnRows(roomRows(want))

	got, err := s.FindByID(context.Background(), "room-1")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRoomStore_Insert(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	r := sampleRoom()

	mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs(r.ID, r.Name, r.PasswordEnabled, r.PasswordHash, r.Secret,
			r.DefaultTabID, r.Tabs, r.Participants, r.UserTokens,
			r.CreatedAt, r.ValidTill, r.Archived).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Insert(context.Background(), r))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomStore_Insert_DuplicateName(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	r := sampleRoom()

	mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs(r.ID, r.Name, r.PasswordEnabled, r.PasswordHash, r.Secret,
			r.DefaultTabID, r.Tabs, r.Participants, r.UserTokens,
			r.CreatedAt, r.ValidTill, r.Archived).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.Insert(context.Background(), r)
	require.ErrorIs(t, err, errs.ErrDuplicateRoomName)
}

func TestRoomStore_Insert_StorageFailure(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	r := sampleRoom()

	mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs(r.ID, r.Name, r.PasswordEnabled, r.PasswordHash, r.Secret,
			r.DefaultTabID, r.Tabs, r.Participants, r.UserTokens,
			r.CreatedAt, r.ValidTill, r.Archived).
		WillReturnError(&pgconn.PgError{Code: "53300"})

	err := s.Insert(context.Background(), r)
	require.ErrorIs(t, err, errs.ErrStorageFailure)
}

func TestRoomStore_UpdateTabs(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	tabs := []models.Tab{{TabID: 1}, {TabID: 11}}

	mock.ExpectExec(`UPDATE rooms\s+SET tabs = \$2\s+WHERE id = \$1 AND NOT archived`).
		WithArgs("room-1", tabs).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.UpdateTabs(context.Background(), "room-1", tabs))
}

func TestRoomStore_UpdateTabs_RoomGone(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE rooms\s+SET tabs = \$2\s+WHERE id = \$1 AND NOT archived`).
		WithArgs("room-1", []models.Tab(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateTabs(context.Background(), "room-1", nil)
	require.ErrorIs(t, err, errs.ErrRoomNotFound)
}

func TestRoomStore_AppendParticipant(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	p := models.ParticipantProfile{UserID: "u1", DisplayName: "Jane", Initials: "J", AvatarColor: "#fff"}
	ut := models.UserToken{UserID: "u1", UserToken: "tok"}

	mock.ExpectExec(`SET participants = participants \|\| \$2`).
		WithArgs("room-1", []models.ParticipantProfile{p}, []models.UserToken{ut}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.AppendParticipant(context.Background(), "room-1", p, ut))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomStore_AppendParticipant_RoomGone(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	p := models.ParticipantProfile{UserID: "u1"}
	ut := models.UserToken{UserID: "u1", UserToken: "tok"}

	mock.ExpectExec(`SET participants = participants \|\| \$2`).
		WithArgs("room-1", []models.ParticipantProfile{p}, []models.UserToken{ut}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.AppendParticipant(context.Background(), "room-1", p, ut)
	require.ErrorIs(t, err, errs.ErrRoomNotFound)
}
