package repository

import (
	"context"

	"stayledger/internal/domain/room"
	"stayledger/internal/infra"
	"stayledger/internal/infra/db"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(dbtx db.DBTX) *RoomRepository {
	return &RoomRepository{db: dbtx}
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const query = `
		SELECT id, host_id, base_price_per_night, currency, max_guests, time_zone_id, deleted_at
		FROM room
		WHERE id = $1`

	var (
		roomID    pgtype.UUID
		hostID    pgtype.UUID
		basePrice int64
		currency  string
		maxGuests int32
		tz        string
		deletedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&roomID, &hostID, &basePrice, &currency, &maxGuests, &tz, &deletedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(errs.ErrRoomNotFound, "room %s", id)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	return room.NewRoom(
		pgconv.UUIDFromPgtype(roomID),
		pgconv.UUIDFromPgtype(hostID),
		basePrice,
		currency,
		int(maxGuests),
		tz,
		deletedAt.Valid,
	)
}
