package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/naivedh/roomgate/internal/db"
	"github.com/naivedh/roomgate/internal/errs"
	"github.com/naivedh/roomgate/internal/models"
)

// RoomStore implements repository.RoomRepository on Postgres. Rooms are
// one row each; tabs, participants, and user tokens live in jsonb columns
// so every mutation is a single-row, single-statement write.
type RoomStore struct {
	pool db.PgxPool
}

func NewRoomStore(pool db.PgxPool) *RoomStore {
	return &RoomStore{pool: pool}
}

const roomColumns = `id, name, password_enabled, password_hash, secret, default_tab_id, tabs, participants, user_tokens, created_at, valid_till, archived`

func (s *RoomStore) FindByName(ctx context.Context, name string) (*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE name = $1 AND NOT archived`

	return s.findOne(ctx, query, name)
}

func (s *RoomStore) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE id = $1 AND NOT archived`

	return s.findOne(ctx, query, id)
}

func (s *RoomStore) findOne(ctx context.Context, query string, arg any) (*models.Room, error) {
	var r models.Room
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&r.ID,
		&r.Name,
		&r.PasswordEnabled,
		&r.PasswordHash,
		&r.Secret,
		&r.DefaultTabID,
		&r.Tabs,
		&r.Participants,
		&r.UserTokens,
		&r.CreatedAt,
		&r.ValidTill,
		&r.Archived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find room: %v", errs.ErrStorageFailure, err)
	}
	return &r, nil
}

func (s *RoomStore) Insert(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.pool.Exec(ctx, query,
		room.ID,
		room.Name,
		room.PasswordEnabled,
		room.PasswordHash,
		room.Secret,
		room.DefaultTabID,
		room.Tabs,
		room.Participants,
		room.UserTokens,
		room.CreatedAt,
		room.ValidTill,
		room.Archived,
	)
	if err != nil {
		// The partial unique index on (name) WHERE NOT archived closes
		// the check-then-insert race window.
		if db.IsUniqueViolation(err) {
			return errs.ErrDuplicateRoomName
		}
		return fmt.Errorf("%w: insert room: %v", errs.ErrStorageFailure, err)
	}
	return nil
}

func (s *RoomStore) UpdateTabs(ctx context.Context, id string, tabs []models.Tab) error {
	query := `
		UPDATE rooms
		SET tabs = $2
		WHERE id = $1 AND NOT archived`

	tag, err := s.pool.Exec(ctx, query, id, tabs)
	if err != nil {
		return fmt.Errorf("%w: update tabs: %v", errs.ErrStorageFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrRoomNotFound
	}
	return nil
}

func (s *RoomStore) AppendParticipant(ctx context.Context, id string, profile models.ParticipantProfile, userToken models.UserToken) error {
	// jsonb || jsonb appends; both lists grow in the same statement so a
	// profile never lands without its token pair.
	query := `
		UPDATE rooms
		SET participants = participants || $2,
		    user_tokens = user_tokens || $3
		WHERE id = $1 AND NOT archived`

	tag, err := s.pool.Exec(ctx, query, id,
		[]models.ParticipantProfile{profile},
		[]models.UserToken{userToken},
	)
	if err != nil {
		return fmt.Errorf("%w: append participant: %v", errs.ErrStorageFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrRoomNotFound
	}
	return nil
}
