package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepository is the durable reservation store. Insert and
// CompareAndSetStatus are the two concurrency primitives: Insert is atomic
// with respect to other inserts on the same room, CompareAndSetStatus has
// compare-and-swap semantics.
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]domain.Reservation, error)
	Insert(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	CompareAndSetStatus(ctx context.Context, id string, expected, next domain.ReservationStatus) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	List(ctx context.Context, status *domain.ReservationStatus) ([]domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	FindDepartedConfirmed(ctx context.Context, before time.Time) ([]domain.Reservation, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

const reservationColumns = `id, user_id, room_id, hotel_id, check_in, check_out, guest_count, special_requests, total_price, status, coalesce(idempotency_key, ''), created_at, updated_at`

func scanReservation(row pgx.Row, r *domain.Reservation) error {
	return row.Scan(&r.ID, &r.UserID, &r.RoomID, &r.HotelID, &r.CheckIn, &r.CheckOut, &r.GuestCount, &r.SpecialRequests, &r.TotalPrice, &r.Status, &r.IdempotencyKey, &r.CreatedAt, &r.UpdatedAt)
}

func (p *PGReservationRepository) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]domain.Reservation, error) {
	rows, err := p.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations
		WHERE room_id=$1 AND status <> $2 AND check_in < $3 AND check_out > $4`,
		roomID, domain.ReservationStatusCancelled, checkOut, checkIn)
	if err != nil {
		return nil, storeFailure(err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// Insert persists a new pending reservation. The overlap re-check and the
// insert run in one transaction serialized per room by an advisory lock, so
// two concurrent inserts for the same room cannot both pass the check. When
// the reservation carries an idempotency key that was already used, the
// previously inserted record is returned instead of a duplicate.
func (p *PGReservationRepository) Insert(ctx context.Context, reservation *domain.Reservation) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storeFailure(err)
	}
	defer tx.Rollback(ctx)

	// Held until commit; keys creation on the room, not the whole table.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, reservation.RoomID); err != nil {
		return storeFailure(err)
	}

	if reservation.IdempotencyKey != "" {
		var existing domain.Reservation
		err := scanReservation(tx.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE idempotency_key=$1`, reservation.IdempotencyKey), &existing)
		switch {
		case err == nil:
			*reservation = existing
			return tx.Commit(ctx)
		case !errors.Is(err, pgx.ErrNoRows):
			return storeFailure(err)
		}
	}

	var occupied int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM reservations
		WHERE room_id=$1 AND status <> $2 AND check_in < $3 AND check_out > $4`,
		reservation.RoomID, domain.ReservationStatusCancelled, reservation.CheckOut, reservation.CheckIn).Scan(&occupied); err != nil {
		return storeFailure(err)
	}
	if occupied > 0 {
		return domain.ErrRoomUnavailable
	}

	reservation.ID = uuid.NewString()
	reservation.Status = domain.ReservationStatusPending
	if err := tx.QueryRow(ctx, `INSERT INTO reservations (id, user_id, room_id, hotel_id, check_in, check_out, guest_count, special_requests, total_price, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, nullif($11, ''))
		RETURNING created_at, updated_at`,
		reservation.ID, reservation.UserID, reservation.RoomID, reservation.HotelID, reservation.CheckIn, reservation.CheckOut,
		reservation.GuestCount, reservation.SpecialRequests, reservation.TotalPrice, reservation.Status, reservation.IdempotencyKey).
		Scan(&reservation.CreatedAt, &reservation.UpdatedAt); err != nil {
		return storeFailure(err)
	}

	return tx.Commit(ctx)
}

func (p *PGReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var r domain.Reservation
	err := scanReservation(p.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id), &r)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return &r, nil
}

// CompareAndSetStatus writes next only if the stored status still equals
// expected. A losing concurrent writer gets ErrConflict, never a silent
// last-write-wins overwrite.
func (p *PGReservationRepository) CompareAndSetStatus(ctx context.Context, id string, expected, next domain.ReservationStatus) (*domain.Reservation, error) {
	var r domain.Reservation
	err := scanReservation(p.db.QueryRow(ctx, `UPDATE reservations SET status=$1, updated_at=now()
		WHERE id=$2 AND status=$3 RETURNING `+reservationColumns, next, id, expected), &r)
	if err == nil {
		return &r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeFailure(err)
	}

	var current domain.ReservationStatus
	err = p.db.QueryRow(ctx, `SELECT status FROM reservations WHERE id=$1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return nil, domain.ErrConflict
}

func (p *PGReservationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	rows, err := p.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (p *PGReservationRepository) List(ctx context.Context, status *domain.ReservationStatus) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`
	args := []any{}
	if status != nil {
		query = `SELECT ` + reservationColumns + ` FROM reservations WHERE status=$1 ORDER BY created_at DESC`
		args = append(args, *status)
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeFailure(err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (p *PGReservationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := p.db.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return storeFailure(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (p *PGReservationRepository) FindDepartedConfirmed(ctx context.Context, before time.Time) ([]domain.Reservation, error) {
	rows, err := p.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE status=$1 AND check_out <= $2`,
		domain.ReservationStatusConfirmed, before)
	if err != nil {
		return nil, storeFailure(err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		var r domain.Reservation
		if err := scanReservation(rows, &r); err != nil {
			return nil, storeFailure(err)
		}
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure(err)
	}
	return reservations, nil
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
