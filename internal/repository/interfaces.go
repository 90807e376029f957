package repository

import (
	"context"

	"github.com/naivedh/roomgate/internal/models"
)

// RoomRepository is the narrow surface this core needs from the room
// store: find by name, find by id, insert-if-absent, and two field-level
// updates. Every method that mutates does so in a single statement — the
// store's per-row atomicity is the only consistency mechanism here.
//
// Both finders are scoped to non-archived rooms: an archived room is
// invisible to every operation in this core.
type RoomRepository interface {
	// FindByName returns the non-archived room with the given name.
	// Returns nil, nil if not found.
	FindByName(ctx context.Context, name string) (*models.Room, error)

	// FindByID returns the non-archived room with the given id.
	// Returns nil, nil if not found.
	FindByID(ctx context.Context, id string) (*models.Room, error)

	// Insert persists a new room. Returns errs.ErrDuplicateRoomName when
	// a non-archived room with the same name already exists — the
	// store-level backstop for the non-atomic check-then-insert.
	Insert(ctx context.Context, room *models.Room) error

	// UpdateTabs replaces the room's active tab list.
	UpdateTabs(ctx context.Context, id string, tabs []models.Tab) error

	// AppendParticipant appends a profile and its user-token pair in one
	// atomic update.
	AppendParticipant(ctx context.Context, id string, profile models.ParticipantProfile, userToken models.UserToken) error
}
