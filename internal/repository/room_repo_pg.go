package repository

import (
	"context"
	"errors"

	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomRepository is the read-only room catalog accessor. The engine never
// writes rooms; catalog maintenance lives outside this service.
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

func (p *PGRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	row := p.db.QueryRow(ctx, `SELECT id, hotel_id, room_type, coalesce(room_number, ''), nightly_rate, capacity, created_at, updated_at FROM rooms WHERE id=$1`, id)
	var r domain.Room
	if err := row.Scan(&r.ID, &r.HotelID, &r.RoomType, &r.RoomNumber, &r.NightlyRate, &r.Capacity, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, storeFailure(err)
	}
	return &r, nil
}

func (p *PGRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := p.db.Query(ctx, `SELECT id, hotel_id, room_type, coalesce(room_number, ''), nightly_rate, capacity, created_at, updated_at FROM rooms ORDER BY hotel_id, room_number`)
	if err != nil {
		return nil, storeFailure(err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var r domain.Room
		if err := rows.Scan(&r.ID, &r.HotelID, &r.RoomType, &r.RoomNumber, &r.NightlyRate, &r.Capacity, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, storeFailure(err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

var _ RoomRepository = (*PGRoomRepository)(nil)
