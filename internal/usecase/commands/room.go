package commands

import (
	"context"

	"stayledger/internal/domain/room"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

// loadRoom returns errs.ErrRoomNotFound for rooms that are soft-deleted as
// well as for rooms that do not exist.
func loadRoom(ctx context.Context, tx shared.Tx, roomID uuid.UUID) (*room.Room, error) {
	rm, err := tx.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm.IsDeleted() {
		return nil, errs.Wrapf(errs.ErrRoomNotFound, "room %s is deleted", roomID)
	}
	return rm, nil
}

func loadHostedRoom(ctx context.Context, tx shared.Tx, roomID, hostID uuid.UUID) (*room.Room, error) {
	rm, err := loadRoom(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	if !rm.IsHostedBy(hostID) {
		return nil, errs.ErrForbidden
	}
	return rm, nil
}
